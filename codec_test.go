package treesearch_test

import (
	"encoding/json"
	"testing"

	"github.com/njchilds90/go-treesearch"
)

func TestUnmarshalPreservesOrder(t *testing.T) {
	v, err := treesearch.Unmarshal([]byte(`{"z":1,"a":2,"m":{"y":null,"b":[true,"s"]}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var keys []string
	for _, m := range v.Members() {
		keys = append(keys, m.Key)
	}
	if len(keys) != 3 || keys[0] != "z" || keys[1] != "a" || keys[2] != "m" {
		t.Errorf("unexpected key order %v", keys)
	}

	got, err := treesearch.Marshal(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != `{"z":1,"a":2,"m":{"y":null,"b":[true,"s"]}}` {
		t.Errorf("unexpected encoding %s", got)
	}
}

func TestUnmarshalNumbers(t *testing.T) {
	tests := []struct {
		in      string
		want    treesearch.Value
		integer bool
	}{
		{"0", treesearch.Int(0), true},
		{"-42", treesearch.Int(-42), true},
		{"18446744073709551615", treesearch.Uint(18446744073709551615), true},
		{"1.0", treesearch.Float(1), false},
		{"0.5", treesearch.Float(0.5), false},
		{"1e3", treesearch.Float(1000), false},
	}
	for _, tc := range tests {
		v, err := treesearch.Unmarshal([]byte(tc.in))
		if err != nil {
			t.Fatalf("Unmarshal(%s): unexpected error: %v", tc.in, err)
		}
		if !v.Equal(tc.want) {
			t.Errorf("Unmarshal(%s) = %s, want %s", tc.in, v, tc.want)
		}
		n, _ := v.AsNumber()
		if n.IsInteger() != tc.integer {
			t.Errorf("Unmarshal(%s): IsInteger = %v", tc.in, n.IsInteger())
		}
	}

	if treesearch.Int(1).Equal(treesearch.Float(1)) {
		t.Error("integer 1 and float 1.0 must differ")
	}
}

func TestMarshalFloatKeepsRepresentation(t *testing.T) {
	in := treesearch.Array(treesearch.Float(2), treesearch.Int(2), treesearch.Float(0.25))
	data, err := treesearch.Marshal(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `[2.0,2,0.25]` {
		t.Errorf("unexpected encoding %s", data)
	}

	out, err := treesearch.Unmarshal(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Equal(in) {
		t.Errorf("round trip changed %s into %s", in, out)
	}
}

func TestMarshalRejectsNaN(t *testing.T) {
	_, err := treesearch.Marshal(treesearch.Array(treesearch.Float(nan())))
	if !treesearch.IsInputError(err) {
		t.Errorf("expected input error, got %v", err)
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	for _, in := range []string{
		``, `{`, `[1,`, `[1`, `{"a":}`, `tru`, `"open`, `1 2`, `{} x`,
		`[1,]`, `{"a":1,}`, `{"a":{"":}}`, `[{"":}]`, `{"a" 1}`, `{1:2}`, `[1}`, `{"a":1]`,
		`01`, `-01`, `1.`, `.5`, `+1`, `-`, `1e`, `1e+`, `[1.]`, `{"n":00}`,
		"\"\xff\"", "{\"\xfe\":1}", "\"a\x01b\"", `"\x"`, `"\u00"`,
	} {
		_, err := treesearch.Unmarshal([]byte(in))
		if err == nil {
			t.Errorf("Unmarshal(%q): expected error", in)
			continue
		}
		if !treesearch.IsJSONError(err) {
			t.Errorf("Unmarshal(%q): expected JSON error, got %v", in, err)
		}
	}
}

func TestUnmarshalEmptyKeys(t *testing.T) {
	v, err := treesearch.Unmarshal([]byte(`{"":1,"b":{"":[]},"c":{}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := treesearch.Object(
		treesearch.M("", treesearch.Int(1)),
		treesearch.M("b", treesearch.Object(treesearch.M("", treesearch.Array()))),
		treesearch.M("c", treesearch.Object()),
	)
	if !v.Equal(want) {
		t.Errorf("got %s, want %s", v, want)
	}
	if !treesearch.Search(v, treesearch.String("")) {
		t.Error("expected to find the empty key")
	}
}

func TestUnmarshalStringEscapes(t *testing.T) {
	v, err := treesearch.Unmarshal([]byte(`["a\"b", "\u00e9\n", "\\", "日本"]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := treesearch.Array(
		treesearch.String(`a"b`),
		treesearch.String("é\n"),
		treesearch.String(`\`),
		treesearch.String("日本"),
	)
	if !v.Equal(want) {
		t.Errorf("got %s, want %s", v, want)
	}
}

func TestParseNumberGrammar(t *testing.T) {
	for _, in := range []string{"0", "-0", "10", "-1.25", "1e5", "1E-5", "2.5e+3"} {
		if _, err := treesearch.ParseNumber(in); err != nil {
			t.Errorf("ParseNumber(%q): unexpected error: %v", in, err)
		}
	}
	for _, in := range []string{"", "01", "1.", ".5", "+1", "-", "1e", "0x10", "Inf", "NaN", "1_000", " 1"} {
		_, err := treesearch.ParseNumber(in)
		if err == nil {
			t.Errorf("ParseNumber(%q): expected error", in)
			continue
		}
		if !treesearch.IsInputError(err) {
			t.Errorf("ParseNumber(%q): expected input error, got %v", in, err)
		}
	}
}

func TestUnmarshalTrailingWhitespace(t *testing.T) {
	v, err := treesearch.Unmarshal([]byte("  {\"a\": [1, 2]}  \n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Len() != 1 {
		t.Errorf("unexpected value %s", v)
	}
}

func TestDuplicateKeysStayUnique(t *testing.T) {
	v := treesearch.MustParse([]byte(`{"a":1,"b":2,"a":3}`))
	if v.Len() != 2 {
		t.Fatalf("expected 2 members, got %d", v.Len())
	}
	got, _ := v.Get("a")
	if !got.Equal(treesearch.Int(3)) {
		t.Errorf("expected last value to win, got %s", got)
	}
	if v.Members()[0].Key != "a" {
		t.Errorf("expected first position to be kept")
	}
}

func TestValueJSONInterfaces(t *testing.T) {
	type doc struct {
		Tree treesearch.Value `json:"tree"`
	}
	var d doc
	if err := json.Unmarshal([]byte(`{"tree":{"k":[1.5,"v"]}}`), &d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !treesearch.Search(d.Tree, treesearch.Float(1.5)) {
		t.Error("expected decoded tree to contain 1.5")
	}

	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(b) != `{"tree":{"k":[1.5,"v"]}}` {
		t.Errorf("unexpected encoding %s", b)
	}
}

func TestValueEqualIgnoresMemberOrder(t *testing.T) {
	a := treesearch.MustParse([]byte(`{"x":1,"y":[true]}`))
	b := treesearch.MustParse([]byte(`{"y":[true],"x":1}`))
	if !a.Equal(b) {
		t.Error("objects with the same members must be equal")
	}
	if a.Equal(treesearch.MustParse([]byte(`{"x":1}`))) {
		t.Error("objects with different members must differ")
	}
}
