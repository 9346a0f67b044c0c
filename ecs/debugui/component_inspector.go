package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/asteroids/ecs"
)

// componentInspector shows and edits the components of the selected entity.
type componentInspector struct {
	target    *ecs.Storage
	selection *ecs.Singleton[Selection]
}

func (ci *componentInspector) Render() {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	id := ci.selection.Get().Entity
	if id == 0 {
		imgui.Text("No entity selected")
		return
	}

	archetype := ArchetypeOf(ci.target, id)
	if archetype == nil || !ci.target.Alive(id) {
		imgui.Text(fmt.Sprintf("Entity %s no longer exists", id))
		return
	}

	imgui.Text(fmt.Sprintf("Entity ID: %s", id))
	imgui.Text(fmt.Sprintf("Archetype: 0x%X", archetype.ID()))
	imgui.Separator()

	for _, t := range archetype.Types() {
		value := Component(ci.target, id, t)
		if !value.IsValid() {
			continue
		}
		if imgui.TreeNodeStr(t.String()) {
			renderValue(t.String(), value)
			imgui.TreePop()
		}
	}
}

// renderValue draws the exported fields of a struct value. Numeric, bool and
// string fields are editable in place.
func renderValue(id string, v reflect.Value) {
	fields := Fields(v.Type())
	if len(fields) == 0 {
		imgui.Text(fmt.Sprintf("%+v", v.Interface()))
		return
	}
	for _, f := range fields {
		renderField(id+"."+f.Name, f.Name, v.Field(f.Index))
	}
}

func renderField(id, name string, v reflect.Value) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n := int32(toFloat(v))
		label(name)
		if imgui.InputInt("##"+id, &n) {
			_ = SetNumber(v, float64(n))
		}

	case reflect.Float32, reflect.Float64:
		f := float32(v.Float())
		label(name)
		if imgui.InputFloat("##"+id, &f) {
			_ = SetNumber(v, float64(f))
		}

	case reflect.Bool:
		b := v.Bool()
		if imgui.Checkbox(name+"##"+id, &b) && v.CanSet() {
			v.SetBool(b)
		}

	case reflect.String:
		s := v.String()
		label(name)
		if imgui.InputTextWithHint("##"+id, "", &s, imgui.InputTextFlagsNone, nil) && v.CanSet() {
			v.SetString(s)
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name + "##" + id) {
			renderValue(id, v)
			imgui.TreePop()
		}

	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			imgui.Text(fmt.Sprintf("%s: nil", name))
			return
		}
		imgui.Text(fmt.Sprintf("%s: %T %+v", name, v.Interface(), v.Elem().Interface()))

	case reflect.Slice, reflect.Array:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, v.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, v.Len()))

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, v.Interface()))
	}
}

func label(name string) {
	imgui.Text(name + ":")
	imgui.SameLine()
	imgui.SetNextItemWidth(150)
}

func toFloat(v reflect.Value) float64 {
	switch v.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint())
	case reflect.Float32, reflect.Float64:
		return v.Float()
	default:
		return float64(v.Int())
	}
}
