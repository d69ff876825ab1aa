package ai

import "encoding"

var _ interface {
	encoding.TextMarshaler
	encoding.TextUnmarshaler
} = new(Algorithm)

func (a Algorithm) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Algorithm) UnmarshalText(bs []byte) error {
	alg, err := ParseAlgorithm(string(bs))
	if err != nil {
		return err
	}
	*a = alg
	return nil
}
