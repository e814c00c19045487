package on_chip_memory

import (
	"context"
	"fmt"

	"github.com/vk/ipforge/internal/bram"
	"github.com/vk/ipforge/internal/ctxlog"
	"github.com/vk/ipforge/internal/ipcore"
	"github.com/vk/ipforge/internal/meminit"
)

const coreName = "on_chip_memory"

// Input defines the arguments of an on_chip_memory instance.
type Input struct {
	MemoryType      string `ipf:"memory_type"`
	DataWidth       int    `ipf:"data_width"`
	Depth           int    `ipf:"depth"`
	ByteWriteEnable bool   `ipf:"byte_write_enable"`
	OutputRegister  bool   `ipf:"output_register"`
	CommonClock     bool   `ipf:"common_clock"`
	Aspect          string `ipf:"aspect"`
	InitFile        string `ipf:"init_file"`
	InitFormat      string `ipf:"init_format"`
}

// Output describes the generated memory.
type Output struct {
	ModuleName     string `cty:"module_name"`
	AddressWidth   int    `cty:"address_width"`
	DataWidth      int    `cty:"data_width"`
	Depth          int    `cty:"depth"`
	BramCount      int    `cty:"bram_count"`
	Rows           int    `cty:"rows"`
	Columns        int    `cty:"columns"`
	PrimitiveDepth int    `cty:"primitive_depth"`
	PrimitiveWidth int    `cty:"primitive_width"`
	ReadLatency    int    `cty:"read_latency"`
}

// Generate plans the primitive array and emits the wrapper.
func Generate(ctx context.Context, e *ipcore.Emitter, in *Input) (*Output, error) {
	logger := ctxlog.FromContext(ctx)

	layout, err := bram.Plan(bram.Request{
		Type:            bram.MemoryType(in.MemoryType),
		DataWidth:       in.DataWidth,
		Depth:           in.Depth,
		ByteWriteEnable: in.ByteWriteEnable,
		OutputRegister:  in.OutputRegister,
		Aspect:          in.Aspect,
	})
	if err != nil {
		return nil, err
	}
	logger.Debug("Planned memory.", "layout", layout.Summary(), "primitives", layout.Count())

	inits, err := loadInit(e, in, layout)
	if err != nil {
		return nil, err
	}

	m := buildWrapper(e.Name(), layout, in.CommonClock, inits)
	if err := e.AddVerilog(m); err != nil {
		return nil, err
	}

	return &Output{
		ModuleName:     m.Name,
		AddressWidth:   layout.AddressWidth,
		DataWidth:      in.DataWidth,
		Depth:          in.Depth,
		BramCount:      layout.Count(),
		Rows:           layout.Rows,
		Columns:        layout.Columns,
		PrimitiveDepth: layout.Aspect.Depth,
		PrimitiveWidth: layout.Aspect.Width,
		ReadLatency:    layout.ReadLatency,
	}, nil
}

// loadInit reads the init image, if any, and spreads it over the primitives.
func loadInit(e *ipcore.Emitter, in *Input, layout *bram.Layout) ([]string, error) {
	if in.InitFile == "" {
		if layout.Request.Type == bram.ROM {
			return nil, ipcore.NewParamError(coreName, "init_file", "is required for a rom")
		}
		return nil, nil
	}
	format, err := meminit.ParseFormat(in.InitFormat)
	if err != nil {
		return nil, ipcore.NewParamError(coreName, "init_format", "%s", err)
	}
	words, err := meminit.ReadFile(e.Resolve(in.InitFile), format)
	if err != nil {
		return nil, err
	}
	inits, err := layout.InitVectors(words)
	if err != nil {
		return nil, fmt.Errorf("init_file %s: %w", in.InitFile, err)
	}
	return inits, nil
}
