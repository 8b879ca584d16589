//go:build !gui

package main

import (
	"context"

	"chatty/render"
)

func initGUI() {
	panic("chatty: built without GUI support (rebuild with -tags gui)")
}

func attachGUI(context.Context, <-chan render.Frame) (<-chan struct{}, bool) {
	return nil, false
}
