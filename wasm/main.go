//go:build wasm

package main

import (
	"syscall/js"
)

func main() {
	// Export functions to JavaScript
	js.Global().Set("LexgrepDecodeSession", js.FuncOf(decodeSession))
	js.Global().Set("LexgrepEncodeSession", js.FuncOf(encodeSession))
	js.Global().Set("LexgrepRun", js.FuncOf(run))

	// Keep WASM running
	<-make(chan struct{})
}
