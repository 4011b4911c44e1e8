package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extract(t *testing.T, path, source string) *ParsedFile {
	t.Helper()
	f, err := New().Extract([]byte(source), path)
	require.NoError(t, err)
	return f
}

func TestExtract_Imports(t *testing.T) {
	src := `
import React from "react";
import { Button } from "./components/Button";
import type { Config } from "./config";
import * as utils from "./utils";
export { helper } from "./helper";
const lazy = import("./lazy");
`
	f := extract(t, "src/App.ts", src)

	require.Len(t, f.Imports, 6)

	byPath := make(map[string]ImportInfo)
	for _, imp := range f.Imports {
		byPath[imp.ImportPath] = imp
	}
	assert.Contains(t, byPath, "react")
	assert.Contains(t, byPath, "./components/Button")
	assert.Contains(t, byPath, "./helper", "re-exports count as imports")
	assert.True(t, byPath["./config"].IsTypeOnly)
	assert.True(t, byPath["./lazy"].IsDynamic)
	assert.False(t, byPath["./components/Button"].IsTypeOnly)
}

func TestExtract_ImportDedup(t *testing.T) {
	src := `
import { a } from "./mod";
import { b } from "./mod";
`
	f := extract(t, "src/a.ts", src)
	assert.Len(t, f.Imports, 1, "same specifier recorded once")
}

func TestExtract_Implements(t *testing.T) {
	src := `
import { Repository } from "./contract";

interface Local {
    touch(): void;
}

export class Service implements Repository, Local {
    touch() {}
}
`
	f := extract(t, "src/service.ts", src)

	require.Len(t, f.Implements, 1)
	impl := f.Implements[0]
	assert.Equal(t, "Service", impl.ClassName)
	assert.Equal(t, []string{"Repository", "Local"}, impl.Interfaces)

	// Only the imported interface gets a specifier binding; Local is
	// declared in this file and stays out of the map.
	assert.Equal(t, map[string]string{"Repository": "./contract"}, impl.InterfaceImports)
}

func TestExtract_ClassHeritage(t *testing.T) {
	src := `
import { Base } from "./base";

export class Widget extends Base implements Renderable<Props> {
}
`
	f := extract(t, "src/widget.ts", src)

	require.Len(t, f.Types, 1)
	typ := f.Types[0]
	assert.Equal(t, "class", typ.Kind)
	assert.Equal(t, "Widget", typ.Name)
	assert.True(t, typ.IsExported)
	assert.Equal(t, []string{"Base"}, typ.Extends)
	assert.Equal(t, []string{"Renderable"}, typ.Implements, "generics unwrap to the head name")
}

func TestExtract_TypeDeclarations(t *testing.T) {
	src := `
export interface User {
    id: string;
    profile: Profile;
}

interface Profile {
    age: number;
}

interface Admin extends User {
    scope: string;
}

export type UserMap = Record<string, User>;

enum Color {
    Red,
    Green,
}
`
	f := extract(t, "src/types.ts", src)

	require.Len(t, f.Types, 5)
	byName := make(map[string]TypeDefinition)
	for _, typ := range f.Types {
		byName[typ.Name] = typ
	}

	user := byName["User"]
	assert.Equal(t, "interface", user.Kind)
	assert.True(t, user.IsExported)
	assert.Contains(t, user.References, "Profile")
	assert.NotContains(t, user.References, "string", "predefined types are not references")

	assert.False(t, byName["Profile"].IsExported)
	assert.Equal(t, []string{"User"}, byName["Admin"].Extends)

	userMap := byName["UserMap"]
	assert.Equal(t, "type", userMap.Kind)
	assert.Contains(t, userMap.References, "User")
	assert.NotContains(t, userMap.References, "UserMap", "self references excluded")

	assert.Equal(t, "enum", byName["Color"].Kind)
}

func TestExtract_JSXRenders(t *testing.T) {
	src := `
import Button from "./Button";
import * as UI from "./ui";

export function App({ ok }: { ok: boolean }) {
    return (
        <div>
            <Button slot="header" />
            {ok && <Button />}
            <UI.Panel />
        </div>
    );
}
`
	f := extract(t, "src/App.tsx", src)

	require.Len(t, f.Renders, 3, "lowercase intrinsic elements are skipped")

	assert.Equal(t, "Button", f.Renders[0].ComponentName)
	assert.Equal(t, 0, f.Renders[0].Position)
	assert.Equal(t, "header", f.Renders[0].SlotName)
	assert.False(t, f.Renders[0].Conditional)

	assert.Equal(t, 1, f.Renders[1].Position)
	assert.True(t, f.Renders[1].Conditional, "short-circuit guard marks the render conditional")

	panel := f.Renders[2]
	assert.Equal(t, "UI.Panel", panel.ComponentName)
	assert.True(t, panel.IsNamespaced)
	assert.Equal(t, 2, panel.Position)
}

func TestExtract_TernaryRenderIsConditional(t *testing.T) {
	src := `
import A from "./A";
import B from "./B";

export function Pick({ ok }: { ok: boolean }) {
    return ok ? <A /> : <B />;
}
`
	f := extract(t, "src/Pick.tsx", src)

	require.Len(t, f.Renders, 2)
	assert.True(t, f.Renders[0].Conditional)
	assert.True(t, f.Renders[1].Conditional)
}

func TestExtract_NoJSXInPlainTS(t *testing.T) {
	f := extract(t, "src/plain.ts", `import Button from "./Button";`)
	assert.Empty(t, f.Renders)
}

func TestSupported(t *testing.T) {
	for _, path := range []string{"a.ts", "a.tsx", "a.js", "a.jsx", "a.mts", "a.cjs"} {
		assert.True(t, Supported(path), path)
	}
	for _, path := range []string{"a.go", "a.css", "README.md", "a"} {
		assert.False(t, Supported(path), path)
	}
}

func TestExtract_UnsupportedExtension(t *testing.T) {
	_, err := New().Extract([]byte("body {}"), "style.css")
	assert.Error(t, err)
}
