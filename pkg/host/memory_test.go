package host

import (
	"context"
	"testing"

	"github.com/cris-achiardi/figma-plugins-sub000/pkg/errors"
)

func TestMemoryCreateAndAppend(t *testing.T) {
	m := NewMemory(MemoryConfig{})

	f := m.CreateFrame()
	if f.ID() == "" {
		t.Error("created node should have an ID")
	}
	if f.Kind() != "FRAME" {
		t.Errorf("Kind = %q, want FRAME", f.Kind())
	}

	m.Root().AppendChild(f)
	if len(m.Root().Children()) != 1 {
		t.Fatalf("page children = %d, want 1", len(m.Root().Children()))
	}

	r := m.CreateRectangle()
	f.AppendChild(r)
	if len(f.Children()) != 1 {
		t.Fatalf("frame children = %d, want 1", len(f.Children()))
	}

	// Re-appending moves the node instead of duplicating it
	g := m.CreateFrame()
	m.Root().AppendChild(g)
	g.AppendChild(r)
	if len(f.Children()) != 0 {
		t.Errorf("old parent should lose moved child, has %d", len(f.Children()))
	}
	if len(g.Children()) != 1 {
		t.Errorf("new parent should gain moved child, has %d", len(g.Children()))
	}
}

func TestMemoryGroup(t *testing.T) {
	m := NewMemory(MemoryConfig{})

	// Empty group is rejected
	if _, err := m.Group(nil, m.Root()); !errors.Is(err, errors.ErrCodeHostRejected) {
		t.Errorf("empty group error = %v, want HOST_REJECTED", err)
	}

	a := m.CreateRectangle()
	b := m.CreateRectangle()
	m.Root().AppendChild(a)
	m.Root().AppendChild(b)

	g, err := m.Group([]Node{a, b}, m.Root())
	if err != nil {
		t.Fatalf("Group error: %v", err)
	}
	if g.Kind() != "GROUP" {
		t.Errorf("Kind = %q, want GROUP", g.Kind())
	}
	if len(g.Children()) != 2 {
		t.Errorf("group children = %d, want 2", len(g.Children()))
	}
	// Children moved out of the page into the group
	if len(m.Root().Children()) != 1 {
		t.Errorf("page children = %d, want 1 (the group)", len(m.Root().Children()))
	}
	if m.GroupCalls != 2 {
		t.Errorf("GroupCalls = %d, want 2", m.GroupCalls)
	}
}

func TestMemoryCombineAsVariants(t *testing.T) {
	m := NewMemory(MemoryConfig{})

	one := m.CreateComponent()
	m.Root().AppendChild(one)
	if _, err := m.CombineAsVariants([]Node{one}, m.Root()); !errors.Is(err, errors.ErrCodeHostRejected) {
		t.Errorf("single-variant combine error = %v, want HOST_REJECTED", err)
	}

	two := m.CreateComponent()
	m.Root().AppendChild(two)
	set, err := m.CombineAsVariants([]Node{one, two}, m.Root())
	if err != nil {
		t.Fatalf("CombineAsVariants error: %v", err)
	}
	if set.Kind() != "COMPONENT_SET" {
		t.Errorf("Kind = %q, want COMPONENT_SET", set.Kind())
	}
	if len(set.Children()) != 2 {
		t.Errorf("set children = %d, want 2", len(set.Children()))
	}
	if m.CombineCalls != 2 {
		t.Errorf("CombineCalls = %d, want 2", m.CombineCalls)
	}
}

func TestMemoryImportVector(t *testing.T) {
	m := NewMemory(MemoryConfig{})

	// No drawable elements
	if _, err := m.ImportVector("<svg></svg>"); err == nil {
		t.Error("expected error for empty markup")
	}

	// Single path produces a wrapper with one child
	n, err := m.ImportVector(`<svg><path d="M0 0 L10 10"/></svg>`)
	if err != nil {
		t.Fatalf("ImportVector error: %v", err)
	}
	if len(n.Children()) != 1 {
		t.Errorf("wrapper children = %d, want 1", len(n.Children()))
	}

	// Multiple shapes produce multiple children
	n, err = m.ImportVector(`<svg><path d="M0 0"/><rect width="5" height="5"/></svg>`)
	if err != nil {
		t.Fatalf("ImportVector error: %v", err)
	}
	if len(n.Children()) != 2 {
		t.Errorf("wrapper children = %d, want 2", len(n.Children()))
	}
}

func TestMemoryLoadFont(t *testing.T) {
	ctx := context.Background()

	// Nil available set: everything loads
	open := NewMemory(MemoryConfig{})
	if err := open.LoadFont(ctx, FontName{Family: "Anything", Style: "Regular"}); err != nil {
		t.Errorf("LoadFont error: %v", err)
	}

	// Restricted set
	m := NewMemory(MemoryConfig{
		AvailableFonts: []FontName{{Family: "Inter", Style: "Regular"}},
	})
	if err := m.LoadFont(ctx, FontName{Family: "Inter", Style: "Regular"}); err != nil {
		t.Errorf("available font should load: %v", err)
	}
	err := m.LoadFont(ctx, FontName{Family: "Foo", Style: "Regular"})
	if !errors.Is(err, errors.ErrCodeFontUnavailable) {
		t.Errorf("unavailable font error = %v, want FONT_UNAVAILABLE", err)
	}
	if m.FontLoads[FontName{Family: "Foo", Style: "Regular"}] != 1 {
		t.Error("FontLoads should record the attempt")
	}
}

func TestMemoryExport(t *testing.T) {
	m := NewMemory(MemoryConfig{})

	f := m.CreateFrame()
	f.SetName("Card")
	f.SetPosition(100, 50)
	f.Resize(200, 100)
	m.Root().AppendChild(f)

	txt := m.CreateText()
	txt.SetName("Label")
	txt.SetPosition(10, 10)
	txt.Resize(50, 20)
	txt.SetFontName(FontName{Family: "Inter", Style: "Regular"})
	txt.SetCharacters("Hi")
	f.AppendChild(txt)

	exported, err := m.Export(f)
	if err != nil {
		t.Fatalf("Export error: %v", err)
	}

	if exported.Name != "Card" {
		t.Errorf("Name = %q, want Card", exported.Name)
	}
	bb := exported.AbsoluteBoundingBox
	if bb.X != 100 || bb.Y != 50 || bb.Width != 200 || bb.Height != 100 {
		t.Errorf("root bbox = %+v, want (100,50,200,100)", bb)
	}

	if len(exported.Children) != 1 {
		t.Fatalf("children = %d, want 1", len(exported.Children))
	}
	child := exported.Children[0]
	// Child position is absolute in exported coordinates
	if child.AbsoluteBoundingBox.X != 110 || child.AbsoluteBoundingBox.Y != 60 {
		t.Errorf("child bbox origin = (%v,%v), want (110,60)",
			child.AbsoluteBoundingBox.X, child.AbsoluteBoundingBox.Y)
	}
	if child.Characters != "Hi" {
		t.Errorf("child Characters = %q, want Hi", child.Characters)
	}
	if child.Style == nil || child.Style.FontFamily != "Inter" {
		t.Error("child should carry its font family")
	}
}
