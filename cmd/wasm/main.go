//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/driftdesk/driftdesk/canvas-go/internal/element"
	"github.com/driftdesk/driftdesk/canvas-go/internal/engine"
	"github.com/driftdesk/driftdesk/canvas-go/internal/interact"
)

var (
	eng       *engine.Engine
	transform *interact.TransformSession
)

func main() {
	eng = engine.New(engine.Options{
		StageWidth:     1280,
		StageHeight:    800,
		SnapToGrid:     true,
		SnapToElements: true,
	})

	canvasEngine := js.Global().Get("Object").New()

	// --- Commands (frontend → engine) ---
	canvasEngine.Set("loadDocument", js.FuncOf(loadDocument))
	canvasEngine.Set("loadSampleDocument", js.FuncOf(loadSampleDocument))
	canvasEngine.Set("addElement", js.FuncOf(addElement))
	canvasEngine.Set("pointerDown", js.FuncOf(pointerDown))
	canvasEngine.Set("pointerMove", js.FuncOf(pointerMove))
	canvasEngine.Set("pointerUp", js.FuncOf(pointerUp))
	canvasEngine.Set("cancelGesture", js.FuncOf(cancelGesture))
	canvasEngine.Set("beginTransform", js.FuncOf(beginTransform))
	canvasEngine.Set("endTransform", js.FuncOf(endTransform))
	canvasEngine.Set("abortTransform", js.FuncOf(abortTransform))
	canvasEngine.Set("setSelection", js.FuncOf(setSelection))
	canvasEngine.Set("toggleSelection", js.FuncOf(toggleSelection))
	canvasEngine.Set("clearSelection", js.FuncOf(clearSelection))
	canvasEngine.Set("deleteSelection", js.FuncOf(deleteSelection))
	canvasEngine.Set("duplicateSelection", js.FuncOf(duplicateSelection))
	canvasEngine.Set("nudge", js.FuncOf(nudge))
	canvasEngine.Set("bringToFront", js.FuncOf(bringToFront))
	canvasEngine.Set("sendToBack", js.FuncOf(sendToBack))
	canvasEngine.Set("undo", js.FuncOf(undo))
	canvasEngine.Set("redo", js.FuncOf(redo))
	canvasEngine.Set("setPan", js.FuncOf(setPan))
	canvasEngine.Set("setScale", js.FuncOf(setScale))
	canvasEngine.Set("zoomAt", js.FuncOf(zoomAt))
	canvasEngine.Set("zoomIn", js.FuncOf(zoomIn))
	canvasEngine.Set("zoomOut", js.FuncOf(zoomOut))
	canvasEngine.Set("resetView", js.FuncOf(resetView))
	canvasEngine.Set("fitToContent", js.FuncOf(fitToContent))
	canvasEngine.Set("resize", js.FuncOf(resize))
	canvasEngine.Set("markClean", js.FuncOf(markClean))

	// --- Queries (frontend ← engine) ---
	canvasEngine.Set("tick", js.FuncOf(tick))
	canvasEngine.Set("hitTest", js.FuncOf(hitTest))
	canvasEngine.Set("getSelection", js.FuncOf(getSelection))
	canvasEngine.Set("getSelectionBounds", js.FuncOf(getSelectionBounds))
	canvasEngine.Set("getViewMatrix", js.FuncOf(getViewMatrix))
	canvasEngine.Set("saveDocument", js.FuncOf(saveDocument))
	canvasEngine.Set("isDirty", js.FuncOf(isDirty))

	js.Global().Set("canvasEngine", canvasEngine)
	js.Global().Set("canvasWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

// --- Command Handlers ---

func loadDocument(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing document JSON"})
	}
	if err := eng.LoadDocumentJSON([]byte(args[0].String())); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func loadSampleDocument(this js.Value, args []js.Value) interface{} {
	boardID := "board_sample"
	if len(args) > 0 && args[0].Type() == js.TypeString {
		boardID = args[0].String()
	}
	eng.LoadSampleDocument(boardID)
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func addElement(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing element JSON"})
	}
	var el element.Element
	if err := json.Unmarshal([]byte(args[0].String()), &el); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	added := eng.AddElement(el)
	return js.ValueOf(map[string]interface{}{"id": added.ID})
}

func pointerDown(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	additive := len(args) > 2 && args[2].Truthy()
	eng.PointerDown(args[0].Float(), args[1].Float(), additive)
	return nil
}

func pointerMove(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	eng.PointerMove(args[0].Float(), args[1].Float())
	return nil
}

func pointerUp(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	eng.PointerUp(args[0].Float(), args[1].Float())
	return nil
}

func cancelGesture(this js.Value, args []js.Value) interface{} {
	eng.CancelGesture()
	return nil
}

func beginTransform(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(false)
	}
	transform = eng.Gestures().BeginTransform(args[0].String())
	return js.ValueOf(transform != nil)
}

func endTransform(this js.Value, args []js.Value) interface{} {
	if transform == nil || len(args) < 3 {
		return nil
	}
	lockAspect := len(args) > 3 && args[3].Truthy()
	transform.End(args[0].Float(), args[1].Float(), args[2].Float(), lockAspect)
	transform = nil
	return nil
}

func abortTransform(this js.Value, args []js.Value) interface{} {
	if transform != nil {
		transform.Abort()
		transform = nil
	}
	return nil
}

func setSelection(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || args[0].Type() != js.TypeObject {
		eng.SetSelection(nil)
		return nil
	}
	arr := args[0]
	ids := make([]string, arr.Length())
	for i := range ids {
		ids[i] = arr.Index(i).String()
	}
	eng.SetSelection(ids)
	return nil
}

func toggleSelection(this js.Value, args []js.Value) interface{} {
	if len(args) > 0 {
		eng.ToggleSelection(args[0].String())
	}
	return nil
}

func clearSelection(this js.Value, args []js.Value) interface{} {
	eng.ClearSelection()
	return nil
}

func deleteSelection(this js.Value, args []js.Value) interface{} {
	eng.DeleteSelection()
	return nil
}

func duplicateSelection(this js.Value, args []js.Value) interface{} {
	eng.DuplicateSelection()
	return nil
}

func nudge(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	eng.Nudge(args[0].Float(), args[1].Float())
	return nil
}

func bringToFront(this js.Value, args []js.Value) interface{} {
	eng.BringToFront()
	return nil
}

func sendToBack(this js.Value, args []js.Value) interface{} {
	eng.SendToBack()
	return nil
}

func undo(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Undo())
}

func redo(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Redo())
}

func setPan(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	eng.SetPan(args[0].Float(), args[1].Float())
	return nil
}

func setScale(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	eng.SetScale(args[0].Float())
	return nil
}

func zoomAt(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return nil
	}
	eng.ZoomAt(args[0].Float(), args[1].Float(), args[2].Float())
	return nil
}

func zoomIn(this js.Value, args []js.Value) interface{} {
	eng.ZoomIn()
	return nil
}

func zoomOut(this js.Value, args []js.Value) interface{} {
	eng.ZoomOut()
	return nil
}

func resetView(this js.Value, args []js.Value) interface{} {
	eng.ResetView()
	return nil
}

func fitToContent(this js.Value, args []js.Value) interface{} {
	padding := 40.0
	if len(args) > 0 {
		padding = args[0].Float()
	}
	eng.FitToContent(padding)
	return nil
}

func resize(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	eng.Resize(args[0].Float(), args[1].Float())
	return nil
}

func markClean(this js.Value, args []js.Value) interface{} {
	eng.MarkClean()
	return nil
}

// --- Query Handlers ---

func tick(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.TickJSON())
}

func hitTest(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf("")
	}
	return js.ValueOf(eng.HitTest(args[0].Float(), args[1].Float()))
}

func getSelection(this js.Value, args []js.Value) interface{} {
	ids := eng.SelectedIDs()
	out := make([]interface{}, len(ids))
	for i, id := range ids {
		out[i] = id
	}
	return js.ValueOf(out)
}

func getSelectionBounds(this js.Value, args []js.Value) interface{} {
	b := eng.SelectionBounds()
	return js.ValueOf(map[string]interface{}{
		"x": b.X, "y": b.Y, "width": b.Width, "height": b.Height,
	})
}

func getViewMatrix(this js.Value, args []js.Value) interface{} {
	m := eng.Viewport().Matrix().ToSlice()
	out := make([]interface{}, len(m))
	for i, v := range m {
		out[i] = v
	}
	return js.ValueOf(out)
}

func saveDocument(this js.Value, args []js.Value) interface{} {
	data, err := eng.SaveDocument().Marshal()
	if err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return js.ValueOf(string(data))
}

func isDirty(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Dirty())
}
