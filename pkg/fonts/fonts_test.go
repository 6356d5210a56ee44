package fonts

import "testing"

func TestEmbedded(t *testing.T) {
	f, err := Embedded()
	if err != nil {
		t.Fatalf("Embedded: %v", err)
	}
	if f == nil {
		t.Fatal("Embedded returned nil font")
	}

	// Parsed once, same instance on repeat calls
	f2, _ := Embedded()
	if f != f2 {
		t.Error("Embedded should cache the parsed font")
	}
}

func TestResolveEmptyName(t *testing.T) {
	f, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve(\"\"): %v", err)
	}
	embedded, _ := Embedded()
	if f != embedded {
		t.Error("empty name should resolve to the embedded face")
	}
}

func TestResolveMissingFontFallsBack(t *testing.T) {
	f, err := Resolve("definitely-not-a-real-font-name-zzz.ttf")
	if err != nil {
		t.Fatalf("Resolve with missing font: %v", err)
	}
	embedded, _ := Embedded()
	if f != embedded {
		t.Error("missing font should resolve to the embedded face")
	}
}

func TestFace(t *testing.T) {
	f, err := Embedded()
	if err != nil {
		t.Fatalf("Embedded: %v", err)
	}

	face := Face(f, 24)
	if face == nil {
		t.Fatal("Face returned nil")
	}

	// A face must measure visible glyphs with nonzero advance
	adv, ok := face.GlyphAdvance('M')
	if !ok || adv <= 0 {
		t.Errorf("GlyphAdvance('M') = %v, %v", adv, ok)
	}
}
