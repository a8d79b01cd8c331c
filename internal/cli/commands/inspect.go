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

package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dirpx.dev/facade"
	"dirpx.dev/facade/apis"
	"dirpx.dev/facade/internal/cli/ui"
	"dirpx.dev/facade/kind"
)

func newKindsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "kinds [kind]",
		Short: "List member kinds in classification order",
		Long: `List the member kinds in the order members are classified.

With an argument, parse it as a kind name and report whether it is a member
kind.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 1 {
				k, err := kind.Parse(args[0])
				if err != nil {
					return err
				}
				if k.IsMember() {
					fmt.Fprintf(out, "%s is a member kind\n", k)
				} else {
					fmt.Fprintf(out, "%s is not a member kind\n", k)
				}
				return nil
			}
			t := ui.NewTable(out, a.cfg.NoColor, "PRIORITY", "KIND")
			for i, k := range kind.Members {
				t.AddRow(ui.Text(strconv.Itoa(i+1)), ui.Text(k.String()))
			}
			t.Render()
			return nil
		},
	}
}

func newAssembliesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "assemblies",
		Short: "List the assemblies of the model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.provider()
			if err != nil {
				return err
			}
			t := ui.NewTable(cmd.OutOrStdout(), a.cfg.NoColor, "NAME", "VERSION", "TYPES", "FULL NAME")
			for _, origin := range p.Assemblies() {
				asm := a.u.AssemblyName(origin)
				types, err := a.u.AssemblyTypes(p, asm)
				if err != nil {
					return err
				}
				t.AddRow(
					ui.Value(asm.Name()),
					ui.Value(asm.Version()),
					ui.Text(strconv.Itoa(len(types))),
					ui.Value(asm.FullName()),
				)
			}
			t.Render()
			return nil
		},
	}
}

func newTypesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "types [assembly]",
		Short: "List the types of one or every assembly",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.provider()
			if err != nil {
				return err
			}
			var asms []*facade.AssemblyName
			if len(args) == 1 {
				asm, err := a.u.LookupAssembly(p, args[0])
				if err != nil {
					return err
				}
				asms = append(asms, asm)
			} else {
				for _, origin := range p.Assemblies() {
					asms = append(asms, a.u.AssemblyName(origin))
				}
			}

			t := ui.NewTable(cmd.OutOrStdout(), a.cfg.NoColor, "ASSEMBLY", "TYPE", "BASE")
			for _, asm := range asms {
				types, err := a.u.AssemblyTypes(p, asm)
				if err != nil {
					return err
				}
				for _, typ := range types {
					t.AddRow(ui.Value(asm.Name()), ui.Value(typ.FullName()), typeCell(typ.BaseType()))
				}
			}
			t.Render()
			return nil
		},
	}
}

func newInspectCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <type>",
		Short: "Show a type and its members",
		Long: `Show a type and its members as the facade sees them.

Every accessor is called; those the model cannot answer are printed as
<unsupported>. Members whose kind the facade does not model, such as
events, are listed as Unknown with their underlying type.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.provider()
			if err != nil {
				return err
			}
			typ, err := a.u.LookupType(p, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			kv := ui.NewKeyValues(out, a.cfg.NoColor)
			kv.Add("Type", ui.Value(typ.FullName()))
			kv.Add("Namespace", ui.Value(typ.Namespace()))
			asm, err := typ.AssemblyName()
			if err != nil {
				kv.Add("Assembly", ui.Value("", err))
			} else {
				kv.Add("Assembly", ui.Value(asm.FullName()))
			}
			kv.Add("Base", typeCell(typ.BaseType()))
			ifaces, err := typ.Interfaces()
			kv.Add("Interfaces", ui.Value(typeList(ifaces), err))
			kv.Add("Traits", ui.Text(traits(typ)))
			kv.Render()
			fmt.Fprintln(out)

			flags := apis.DefaultLookup
			if a.cfg.NonPublic {
				flags |= apis.Static | apis.NonPublic
			}
			t := ui.NewTable(out, a.cfg.NoColor, "KIND", "NAME", "SIGNATURE")
			for m, err := range typ.MemberSeq(facade.WithFlags(flags)) {
				var cv *facade.ConversionError
				switch {
				case errors.As(err, &cv):
					a.log.Debug("member skipped", zap.String("type", args[0]), zap.String("origin", cv.Origin))
					t.AddRow(ui.Text(kind.Unknown.String()), ui.Cell{Text: cv.Origin, Failed: true})
					continue
				case err != nil:
					a.log.Warn("member listing failed", zap.String("type", args[0]), zap.Error(err))
					return err
				}
				t.AddRow(ui.Text(m.Kind().String()), ui.Value(m.Name()), signature(m))
			}
			t.Render()
			return nil
		},
	}
}

// signature describes the shape of m: its type, or its parameter list and
// return type.
func signature(m facade.Member) ui.Cell {
	switch m := m.(type) {
	case *facade.Field:
		return typeCell(m.FieldType())
	case *facade.Property:
		pt, err := m.PropertyType()
		if err != nil {
			return ui.Value("", err)
		}
		access := accessors(m.CanRead(), m.CanWrite())
		return ui.Text(typeText(pt) + " " + access)
	case *facade.Method:
		params, err := parameters(m)
		if err != nil {
			return ui.Value("", err)
		}
		ret, err := m.ReturnType()
		if err != nil {
			return ui.Value("", err)
		}
		return ui.Text(params + " " + typeText(ret))
	case *facade.Constructor:
		params, err := parameters(m)
		return ui.Value(params, err)
	case *facade.Type:
		return ui.Text(traits(m))
	}
	return ui.Text("")
}

func parameters(m facade.MethodBase) (string, error) {
	params, err := m.Parameters()
	if err != nil {
		return "", err
	}
	parts := make([]string, 0, len(params))
	for _, p := range params {
		part := "?"
		if pt, err := p.ParameterType(); err == nil {
			part = typeText(pt)
		}
		if name, err := p.Name(); err == nil {
			part += " " + name
		}
		if def, err := p.DefaultValue(); err == nil {
			part += fmt.Sprintf(" = %v", def)
		}
		parts = append(parts, part)
	}
	return "(" + strings.Join(parts, ", ") + ")", nil
}

func accessors(read, write bool) string {
	switch {
	case read && write:
		return "{ get; set; }"
	case read:
		return "{ get; }"
	case write:
		return "{ set; }"
	}
	return "{ }"
}

func traits(t *facade.Type) string {
	var out []string
	if t.IsInterface() {
		out = append(out, "interface")
	}
	if t.IsValueType() {
		out = append(out, "value")
	}
	if t.IsGeneric() {
		out = append(out, "generic")
	}
	if len(out) == 0 {
		return "-"
	}
	return strings.Join(out, ", ")
}

func typeCell(t *facade.Type, err error) ui.Cell {
	if err != nil {
		return ui.Value("", err)
	}
	return ui.Text(typeText(t))
}

// typeText prefers the full name and falls back to the simple name.
func typeText(t *facade.Type) string {
	if name, err := t.FullName(); err == nil {
		return name
	}
	if name, err := t.Name(); err == nil {
		return name
	}
	return ui.Unsupported
}

func typeList(ts []*facade.Type) string {
	if len(ts) == 0 {
		return "-"
	}
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = typeText(t)
	}
	return strings.Join(names, ", ")
}
