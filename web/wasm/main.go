//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/cwbudde/algo-motion/internal/webdemo"
)

var (
	engine *webdemo.Engine
	funcs  []js.Func
)

func main() {
	api := js.Global().Get("Object").New()
	api.Set("init", export(func(args []js.Value) any {
		var cfg []byte
		if len(args) > 0 && args[0].Type() == js.TypeString {
			cfg = []byte(args[0].String())
		}
		e, err := webdemo.NewEngine(cfg)
		if err != nil {
			return err.Error()
		}
		engine = e
		return js.Null()
	}))

	api.Set("processFrame", export(func(args []js.Value) any {
		if engine == nil || len(args) < 2 {
			return js.Null()
		}
		return result(engine.ProcessFrameJSON(args[0].String(), args[1].Float()))
	}))

	api.Set("startCapture", export(func(args []js.Value) any {
		if engine == nil || len(args) < 1 {
			return js.Null()
		}
		engine.StartCapture(args[0].Float())
		return js.Null()
	}))

	api.Set("stopCapture", export(func(args []js.Value) any {
		if engine == nil {
			return js.Null()
		}
		engine.StopCapture()
		return js.Null()
	}))

	api.Set("finish", export(func(args []js.Value) any {
		if engine == nil {
			return js.Null()
		}
		return result(engine.FinishJSON())
	}))

	api.Set("reset", export(func(args []js.Value) any {
		if engine == nil {
			return js.Null()
		}
		engine.Reset()
		return engine.SessionID()
	}))

	api.Set("assessPose", export(func(args []js.Value) any {
		if engine == nil || len(args) < 1 {
			return js.Null()
		}
		return result(engine.AssessPoseJSON(args[0].String()))
	}))

	api.Set("analyzeTremor", export(func(args []js.Value) any {
		if engine == nil || len(args) < 1 {
			return js.Null()
		}
		return result(engine.AnalyzeTremorJSON(args[0].String()))
	}))

	api.Set("setSpectrum", export(func(args []js.Value) any {
		if engine == nil || len(args) < 1 {
			return js.Null()
		}
		p := args[0]
		err := engine.SetSpectrum(webdemo.SpectrumParams{
			Window: p.Get("window").String(),
			Axis:   p.Get("axis").String(),
		})
		if err != nil {
			return err.Error()
		}
		return js.Null()
	}))

	api.Set("spectrumCurve", export(func(args []js.Value) any {
		if engine == nil || len(args) < 1 {
			return js.Global().Get("Float32Array").New(0)
		}
		input := args[0]
		freqs := make([]float64, input.Length())
		for i := 0; i < input.Length(); i++ {
			freqs[i] = input.Index(i).Float()
		}
		resp := engine.SpectrumCurveDB(freqs)
		arr := js.Global().Get("Float32Array").New(len(resp))
		for i := range resp {
			arr.SetIndex(i, resp[i])
		}
		return arr
	}))

	api.Set("sessionId", export(func(args []js.Value) any {
		if engine == nil {
			return js.Null()
		}
		return engine.SessionID()
	}))

	js.Global().Set("AlgoMotion", api)
	select {}
}

// result returns the JSON payload, or an {"error": ...} object on failure.
func result(payload string, err error) any {
	if err != nil {
		obj := js.Global().Get("Object").New()
		obj.Set("error", err.Error())
		return obj
	}
	return payload
}

func export(fn func([]js.Value) any) js.Func {
	f := js.FuncOf(func(_ js.Value, args []js.Value) any {
		return fn(args)
	})
	funcs = append(funcs, f)
	return f
}
