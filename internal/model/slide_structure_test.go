package model

import (
	"encoding/json"
	"strings"
	"testing"
)

const validDeckJSON = `{
  "meta": {"curso": "Matemática Básica", "codigo": "12345", "sesion": 3, "tema": "Derivadas", "total_slides": 4},
  "slides": [
    {"numero": 1, "tipo": "portada", "titulo": "Derivadas", "contenido": {"titulo_principal": "Derivadas", "curso": "Matemática Básica", "sesion": "3", "codigo": "12345"}},
    {"numero": 2, "tipo": "indice", "titulo": "Contenido", "contenido": {"items": ["Definición", "Reglas", "Aplicaciones"]}},
    {"numero": 3, "tipo": "texto_imagen", "titulo": "Definición", "contenido": {"texto": "La derivada mide el cambio instantáneo.", "sugerencia_imagen": "gráfica de una recta tangente"}},
    {"numero": 4, "tipo": "conclusion", "titulo": "Cierre", "contenido": {"puntos": ["La derivada es una tasa de cambio"], "cierre": "Practicar con los ejercicios."}}
  ]
}`

func TestSlideDeckUnmarshalDispatchesByTipo(t *testing.T) {
	var deck SlideDeck
	if err := json.Unmarshal([]byte(validDeckJSON), &deck); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if len(deck.Slides) != 4 {
		t.Fatalf("expected 4 slides, got %d", len(deck.Slides))
	}

	cover, ok := deck.Slides[0].Contenido.(CoverContent)
	if !ok {
		t.Fatalf("slide 1 contenido should be CoverContent, got %T", deck.Slides[0].Contenido)
	}
	if cover.TituloPrincipal != "Derivadas" {
		t.Errorf("unexpected cover title %q", cover.TituloPrincipal)
	}

	list, ok := deck.Slides[1].Contenido.(ListContent)
	if !ok {
		t.Fatalf("slide 2 contenido should be ListContent, got %T", deck.Slides[1].Contenido)
	}
	if len(list.Items) != 3 {
		t.Errorf("expected 3 index items, got %d", len(list.Items))
	}

	if _, ok := deck.Slides[2].Contenido.(TextImageContent); !ok {
		t.Fatalf("slide 3 contenido should be TextImageContent, got %T", deck.Slides[2].Contenido)
	}
	if _, ok := deck.Slides[3].Contenido.(ConclusionContent); !ok {
		t.Fatalf("slide 4 contenido should be ConclusionContent, got %T", deck.Slides[3].Contenido)
	}
}

func TestSlideDeckUnmarshalRejectsUnknownTipo(t *testing.T) {
	raw := `{"meta": {"curso": "x", "codigo": "12345", "sesion": 1, "tema": "t", "total_slides": 1},
		"slides": [{"numero": 1, "tipo": "diagrama_3d", "titulo": "x", "contenido": {}}]}`

	var deck SlideDeck
	err := json.Unmarshal([]byte(raw), &deck)
	if err == nil {
		t.Fatal("unknown tipo must be rejected")
	}
	if !strings.Contains(err.Error(), "diagrama_3d") {
		t.Errorf("error should name the offending tipo: %v", err)
	}
}

func TestSlideDeckRoundTrip(t *testing.T) {
	var deck SlideDeck
	if err := json.Unmarshal([]byte(validDeckJSON), &deck); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	encoded, err := json.Marshal(&deck)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var again SlideDeck
	if err := json.Unmarshal(encoded, &again); err != nil {
		t.Fatalf("re-unmarshal: %v", err)
	}
	if len(again.Slides) != len(deck.Slides) {
		t.Fatalf("slide count changed across round trip: %d vs %d", len(again.Slides), len(deck.Slides))
	}
	for i := range deck.Slides {
		if again.Slides[i].Tipo != deck.Slides[i].Tipo {
			t.Errorf("slide %d tipo changed: %q vs %q", i+1, again.Slides[i].Tipo, deck.Slides[i].Tipo)
		}
	}
}

func TestDistinctTypesPreservesFirstSeenOrder(t *testing.T) {
	deck := SlideDeck{Slides: []Slide{
		{Numero: 1, Tipo: SlidePortada},
		{Numero: 2, Tipo: SlideSoloTexto},
		{Numero: 3, Tipo: SlideSoloTexto},
		{Numero: 4, Tipo: SlideConclusion},
	}}
	got := deck.DistinctTypes()
	want := []SlideType{SlidePortada, SlideSoloTexto, SlideConclusion}
	if len(got) != len(want) {
		t.Fatalf("expected %d types, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %q want %q", i, got[i], want[i])
		}
	}
}
