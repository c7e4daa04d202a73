package parse

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestStrict(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    any
		wantErr bool
	}{
		{
			name:  "object",
			input: `{"name":"Aria","age":30}`,
			want:  map[string]any{"name": "Aria", "age": json.Number("30")},
		},
		{
			name:  "surrounding whitespace",
			input: "  \n[1, true, null]\t ",
			want:  []any{json.Number("1"), true, nil},
		},
		{
			name:  "large integer keeps its literal",
			input: `{"id":12345678901234567890}`,
			want:  map[string]any{"id": json.Number("12345678901234567890")},
		},
		{
			name:  "bare string",
			input: `"hello"`,
			want:  "hello",
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
		{
			name:    "trailing garbage",
			input:   `{"a":1}x`,
			wantErr: true,
		},
		{
			name:    "two values",
			input:   `{} {}`,
			wantErr: true,
		},
		{
			name:    "leading noise",
			input:   `noise{"a":1}`,
			wantErr: true,
		},
		{
			name:    "single quotes",
			input:   `{'a':1}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Strict(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Strict() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Strict() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestBraceSpan(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{name: "noise on both sides", input: `noise{"a":1}trailing`, want: `{"a":1}`, wantOK: true},
		{name: "first open to last close", input: `x{"a":{"b":2}}y}z`, want: `{"a":{"b":2}}y}`, wantOK: true},
		{name: "no braces", input: "plain text", wantOK: false},
		{name: "only open", input: "{ open", wantOK: false},
		{name: "only close", input: "close }", wantOK: false},
		{name: "close before open", input: "} then {", wantOK: false},
		{name: "empty object", input: "{}", want: "{}", wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := BraceSpan(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("BraceSpan() ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("BraceSpan() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRecover_Strict(t *testing.T) {
	text := `{"name":"Aria"}`
	res, err := Recover([]string{text})
	if err != nil {
		t.Fatalf("Recover() error = %v", err)
	}
	if res.Method != MethodStrict {
		t.Errorf("Method = %q, want %q", res.Method, MethodStrict)
	}
	if res.RawText != text {
		t.Errorf("RawText = %q, want %q", res.RawText, text)
	}
	if !reflect.DeepEqual(res.Value, map[string]any{"name": "Aria"}) {
		t.Errorf("Value = %#v", res.Value)
	}
}

func TestRecover_BraceFallbackKeepsRawText(t *testing.T) {
	text := `noise{"a":1}trailing`
	res, err := Recover([]string{text})
	if err != nil {
		t.Fatalf("Recover() error = %v", err)
	}
	if res.Method != MethodBraces {
		t.Errorf("Method = %q, want %q", res.Method, MethodBraces)
	}
	if res.RawText != text {
		t.Errorf("RawText = %q, want the full original %q", res.RawText, text)
	}
	if !reflect.DeepEqual(res.Value, map[string]any{"a": json.Number("1")}) {
		t.Errorf("Value = %#v, want {a:1}", res.Value)
	}
}

func TestRecover_MovesToNextCandidate(t *testing.T) {
	res, err := Recover([]string{"not json", "{broken", `{"ok":true}`, `{"later":true}`})
	if err != nil {
		t.Fatalf("Recover() error = %v", err)
	}
	if res.Index != 2 {
		t.Errorf("Index = %d, want 2", res.Index)
	}
	if res.RawText != `{"ok":true}` {
		t.Errorf("RawText = %q", res.RawText)
	}
}

func TestRecover_NoCandidates(t *testing.T) {
	_, err := Recover(nil)
	if !errors.Is(err, ErrNoEmbeddedData) {
		t.Errorf("Recover(nil) error = %v, want ErrNoEmbeddedData", err)
	}
}

func TestRecover_Unrecoverable(t *testing.T) {
	_, err := Recover([]string{"first candidate", "} second {"})
	if !errors.Is(err, ErrUnrecoverableData) {
		t.Fatalf("Recover() error = %v, want ErrUnrecoverableData", err)
	}

	var ue *UnrecoverableError
	if !errors.As(err, &ue) {
		t.Fatalf("Recover() error %T is not *UnrecoverableError", err)
	}
	if ue.RawText != "first candidate" {
		t.Errorf("RawText = %q, want the first candidate", ue.RawText)
	}
	if ue.Attempts != 2 {
		t.Errorf("Attempts = %d, want 2", ue.Attempts)
	}
	if !strings.Contains(ue.Error(), "first candidate") {
		t.Errorf("Error() = %q, should mention the first candidate", ue.Error())
	}
}

func TestRecover_Base64(t *testing.T) {
	payload := `{"spec":"chara_card_v2","data":{"name":"Aria"}}`
	encoded := base64.StdEncoding.EncodeToString([]byte(payload))

	tests := []struct {
		name       string
		opts       []Option
		wantErr    bool
		wantMethod Method
	}{
		{
			name:    "disabled by default",
			opts:    nil,
			wantErr: true,
		},
		{
			name:       "enabled",
			opts:       []Option{WithBase64()},
			wantMethod: MethodBase64,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Recover([]string{encoded + "\n"}, tt.opts...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Recover() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if res.Method != tt.wantMethod {
				t.Errorf("Method = %q, want %q", res.Method, tt.wantMethod)
			}
			if res.RawText != encoded+"\n" {
				t.Errorf("RawText = %q, want the encoded candidate", res.RawText)
			}
			data, _ := res.Value.(map[string]any)["data"].(map[string]any)
			if data["name"] != "Aria" {
				t.Errorf("decoded value = %#v", res.Value)
			}
		})
	}
}

func TestRecover_StrictWinsOverBase64(t *testing.T) {
	// "1234" is both valid JSON and valid base64.
	res, err := Recover([]string{"1234"}, WithBase64())
	if err != nil {
		t.Fatalf("Recover() error = %v", err)
	}
	if res.Method != MethodStrict || res.Value != json.Number("1234") {
		t.Errorf("Recover() = %v via %q, want 1234 via strict", res.Value, res.Method)
	}
}

func TestRecover_Repair(t *testing.T) {
	text := `card: {name: 'Aria', tags: ['a', 'b'],}`

	if _, err := Recover([]string{text}); !errors.Is(err, ErrUnrecoverableData) {
		t.Fatalf("Recover() without repair error = %v, want ErrUnrecoverableData", err)
	}

	res, err := Recover([]string{text}, WithRepair())
	if err != nil {
		t.Fatalf("Recover(WithRepair) error = %v", err)
	}
	if res.Method != MethodRepaired {
		t.Errorf("Method = %q, want %q", res.Method, MethodRepaired)
	}
	obj, ok := res.Value.(map[string]any)
	if !ok || obj["name"] != "Aria" {
		t.Errorf("Value = %#v, want name Aria", res.Value)
	}
}
