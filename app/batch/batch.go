package batch

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vibast-solutions/ms-go-qrplatba/app/types"
	"gopkg.in/yaml.v3"
)

var ErrEmptyBatch = errors.New("batch file has no payments")

// File is the on-disk layout of an encode batch:
//
//	payments:
//	  - account: 19-2000145399/0800
//	    amount: "450.00"
//	    variable_symbol: "1234567890"
type File struct {
	Payments []*types.EncodeDescriptorRequest `yaml:"payments"`
}

func Load(path string) ([]*types.EncodeDescriptorRequest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(f)
}

// Decode reads a batch and validates every entry. The returned error names
// the first invalid entry by its position.
func Decode(r io.Reader) ([]*types.EncodeDescriptorRequest, error) {
	var file File
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyBatch
		}
		return nil, fmt.Errorf("decode batch: %w", err)
	}
	if len(file.Payments) == 0 {
		return nil, ErrEmptyBatch
	}

	for i, req := range file.Payments {
		if req == nil {
			return nil, fmt.Errorf("payment %d: empty entry", i+1)
		}
		req.Normalize()
		if err := req.Validate(); err != nil {
			return nil, fmt.Errorf("payment %d: %w", i+1, err)
		}
	}

	return file.Payments, nil
}
