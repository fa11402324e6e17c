package codec

import "encoding/json"

// JSON serializes values with encoding/json. Integers come back as float64
// after a round trip through a dynamic blob; prefer Msgpack when integer
// fidelity matters (counter operations coerce either representation).
type JSON[V any] struct{}

func (JSON[V]) Encode(v V) ([]byte, error) { return json.Marshal(v) }
func (JSON[V]) Decode(b []byte) (V, error) {
	var v V
	err := json.Unmarshal(b, &v)
	return v, err
}
