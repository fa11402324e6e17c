package codec

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Struct serializes a dynamic blob as a google.protobuf.Struct message.
// Its value model (null, bool, number, string, list, struct) matches the
// datatype support the adapter reports, and the wire format is readable by
// protobuf consumers in any language. Numbers decode as float64.
type Struct struct{}

var _ Codec[map[string]any] = Struct{}

func (Struct) Encode(m map[string]any) ([]byte, error) {
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, err
	}
	return proto.Marshal(s)
}

func (Struct) Decode(b []byte) (map[string]any, error) {
	var s structpb.Struct
	if err := proto.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	return s.AsMap(), nil
}
