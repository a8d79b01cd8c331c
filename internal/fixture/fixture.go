/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package fixture builds the reference model shared by tests across the
// module.
package fixture

import (
	"errors"

	"dirpx.dev/facade/provider/memory"
)

// ErrNegative is returned by Counter.Increment for negative steps.
var ErrNegative = errors.New("counter: negative increment")

// Model is the reference model with direct handles on its entities.
type Model struct {
	Provider *memory.Provider
	Core     *memory.Assembly
	Demo     *memory.Assembly

	Object, Void, Int32, String, Disposable, Handler *memory.Type

	Counter   *memory.Type
	Count     *memory.Field // private instance "_count", no constant
	Max       *memory.Field // public const 100
	Instances *memory.Field // public static
	NewEmpty  *memory.Constructor
	NewStart  *memory.Constructor
	Increment *memory.Method // instance, void
	Get       *memory.Method // instance, returns Int32
	Reset     *memory.Method // static, void
	Describe  *memory.Method
	Dispose   *memory.Method
	Value     *memory.Property // read-only over _count
	Label     *memory.Property // auto get/set
	Snapshot  *memory.Type     // nested
	Changed   *memory.Event

	Special         *memory.Type
	SpecialDescribe *memory.Method
}

// New builds a fresh model.
func New() *Model {
	p := memory.New()
	m := &Model{Provider: p}

	m.Core = p.Assembly("core").SetVersion("4.0.0.0").SetPublicKeyToken([]byte{0xb7, 0x7a, 0x5c, 0x56})
	m.Object = m.Core.Type("System", "Object")
	m.Void = m.Core.Type("System", "Void").MarkValueType().SetBase(m.Object)
	m.Int32 = m.Core.Type("System", "Int32").MarkValueType().SetBase(m.Object)
	m.String = m.Core.Type("System", "String").SetBase(m.Object)
	m.Disposable = m.Core.Type("System", "IDisposable").MarkInterface()
	m.Handler = m.Core.Type("System", "EventHandler").SetBase(m.Object)
	m.Disposable.DefineMethod("Dispose", m.Void).Abstract()

	m.Demo = p.Assembly("demo").SetVersion("1.0.0")
	c := m.Demo.Type("demo", "Counter").SetBase(m.Object).Implements(m.Disposable).Attr("Serializable")
	m.Counter = c

	m.Count = c.DefineField("_count", m.Int32).NonPublic().Initial(0)
	m.Max = c.DefineField("Max", m.Int32).Const(100)
	m.Instances = c.DefineField("Instances", m.Int32).Static().Initial(0)

	m.NewEmpty = c.DefineConstructor().Init(func(o *memory.Object, _ []any) error {
		bump(m)
		return nil
	})
	m.NewStart = c.DefineConstructor(memory.Param("start", m.Int32)).Init(func(o *memory.Object, args []any) error {
		bump(m)
		o.Set("_count", args[0])
		return nil
	})

	m.Increment = c.DefineMethod("Increment", m.Void, memory.Param("by", m.Int32).Default(1)).
		Func(func(target any, args []any) (any, error) {
			o := target.(*memory.Object)
			by := args[0].(int)
			if by < 0 {
				return nil, ErrNegative
			}
			o.Set("_count", o.Get("_count").(int)+by)
			return nil, nil
		})
	m.Get = c.DefineMethod("Get", m.Int32).Func(func(target any, _ []any) (any, error) {
		return target.(*memory.Object).Get("_count"), nil
	})
	m.Reset = c.DefineMethod("Reset", m.Void).Static().Func(func(target any, _ []any) (any, error) {
		if target != nil {
			return nil, errors.New("counter: static call received a target")
		}
		return nil, m.Instances.SetValue(nil, 0)
	})
	m.Describe = c.DefineMethod("Describe", m.String).Func(func(any, []any) (any, error) {
		return "counter", nil
	})
	m.Dispose = c.DefineMethod("Dispose", m.Void).Func(func(any, []any) (any, error) {
		return nil, nil
	})

	m.Value = c.DefineProperty("Value", m.Int32).Get(func(target any, _ []any) (any, error) {
		return target.(*memory.Object).Get("_count"), nil
	})
	m.Label = c.DefineProperty("Label", m.String).Auto(true, true)
	m.Snapshot = c.DefineNested("Snapshot").SetBase(m.Object)
	m.Changed = c.DefineEvent("Changed", m.Handler)

	m.Special = m.Demo.Type("demo", "SpecialCounter").SetBase(c)
	m.SpecialDescribe = m.Special.DefineMethod("Describe", m.String).Overrides(m.Describe).
		Func(func(any, []any) (any, error) { return "special", nil })

	return m
}

func bump(m *Model) {
	v, _ := m.Instances.Value(nil)
	_ = m.Instances.SetValue(nil, v.(int)+1)
}
