package main

import (
	"strings"

	"github.com/chazu/dexvm/vm"
)

// miniRuntime is the smallest useful host: on-demand class handles keyed
// by descriptor, real monitors, and exception construction. Everything
// that needs a class loader or a heap pends a LinkageError.
type miniRuntime struct {
	*vm.MonitorTable
	classes   map[string]*vm.Class
	throwable *vm.Class
}

func newMiniRuntime() *miniRuntime {
	rt := &miniRuntime{
		MonitorTable: vm.NewMonitorTable(),
		classes:      make(map[string]*vm.Class),
	}
	object := rt.resolveDescriptor("Ljava/lang/Object;")
	rt.throwable = &vm.Class{Descriptor: "Ljava/lang/Throwable;", Super: object}
	rt.classes[rt.throwable.Descriptor] = rt.throwable
	return rt
}

// resolveDescriptor hands out one class handle per descriptor, creating
// it on first use. Exception classes derive from Throwable so catch
// matching works.
func (rt *miniRuntime) resolveDescriptor(descriptor string) *vm.Class {
	if c, ok := rt.classes[descriptor]; ok {
		return c
	}
	c := &vm.Class{Descriptor: descriptor}
	switch {
	case descriptor == "Ljava/lang/Object;":
	case rt.throwable != nil &&
		(strings.HasSuffix(descriptor, "Exception;") || strings.HasSuffix(descriptor, "Error;")):
		c.Super = rt.throwable
	default:
		c.Super = rt.classes["Ljava/lang/Object;"]
	}
	rt.classes[descriptor] = c
	return c
}

func (rt *miniRuntime) unsupported(t *vm.Thread, what string) {
	rt.Throw(t, "Ljava/lang/LinkageError;", what+" is not supported by dexrun")
}

func (rt *miniRuntime) ResolveString(t *vm.Thread, m *vm.Method, idx uint32) vm.Object {
	rt.unsupported(t, "string resolution")
	return nil
}

func (rt *miniRuntime) ResolveClass(t *vm.Thread, m *vm.Method, idx uint32, accessCheck bool) *vm.Class {
	rt.unsupported(t, "class resolution")
	return nil
}

func (rt *miniRuntime) AllocInstance(t *vm.Thread, m *vm.Method, idx uint32, accessCheck bool) vm.Object {
	rt.unsupported(t, "allocation")
	return nil
}

func (rt *miniRuntime) AllocArray(t *vm.Thread, m *vm.Method, idx uint32, length int32, accessCheck bool) vm.Object {
	rt.unsupported(t, "allocation")
	return nil
}

func (rt *miniRuntime) FilledNewArray(t *vm.Thread, f *vm.ShadowFrame, pc uint32, rangeForm, accessCheck bool, result *vm.Value) bool {
	rt.unsupported(t, "allocation")
	return false
}

func (rt *miniRuntime) FieldGet(t *vm.Thread, f *vm.ShadowFrame, pc uint32, scope vm.FieldScope, kind vm.PrimitiveKind, accessCheck bool) bool {
	rt.unsupported(t, "field access")
	return false
}

func (rt *miniRuntime) FieldPut(t *vm.Thread, f *vm.ShadowFrame, pc uint32, scope vm.FieldScope, kind vm.PrimitiveKind, accessCheck bool) bool {
	rt.unsupported(t, "field access")
	return false
}

func (rt *miniRuntime) FieldGetQuick(t *vm.Thread, f *vm.ShadowFrame, pc uint32, kind vm.PrimitiveKind) bool {
	rt.unsupported(t, "field access")
	return false
}

func (rt *miniRuntime) FieldPutQuick(t *vm.Thread, f *vm.ShadowFrame, pc uint32, kind vm.PrimitiveKind) bool {
	rt.unsupported(t, "field access")
	return false
}

func (rt *miniRuntime) Invoke(t *vm.Thread, f *vm.ShadowFrame, pc uint32, kind vm.InvokeKind, rangeForm, accessCheck bool, result *vm.Value) bool {
	rt.unsupported(t, "method invocation")
	return false
}

func (rt *miniRuntime) InvokeVirtualQuick(t *vm.Thread, f *vm.ShadowFrame, pc uint32, rangeForm bool, result *vm.Value) bool {
	rt.unsupported(t, "method invocation")
	return false
}

func (rt *miniRuntime) CheckSuspend(t *vm.Thread) {}

func (rt *miniRuntime) Throw(t *vm.Thread, descriptor, msg string) {
	t.SetException(vm.NewThrowable(rt.resolveDescriptor(descriptor), msg))
}
