package sanitize

import (
	"reflect"
	"testing"
)

func TestTextStripsTagsAndCollapsesWhitespace(t *testing.T) {
	got := Text("  <b>chat</b>bot \n\t de   &lt;script&gt;x&lt;/script&gt; banca ")
	want := "chatbot de x banca"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestQueryTruncatesByRunes(t *testing.T) {
	got := Query("automatización rápida", 13)
	want := "automatizació"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestStringsDropsEmpties(t *testing.T) {
	got := Strings([]string{" Fintech ", "<i></i>", "Retail"})
	want := []string{"Fintech", "Retail"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
