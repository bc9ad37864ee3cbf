package scrub

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"golang.org/x/text/transform"

	"mojibox/internal/decoder"
)

const fffd = "�"

func TestBytesScenarios(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{"truncated four byte", []byte{0xF0, 0x9F, 0x8D}, fffd},
		{"sushi then FF", []byte{0xF0, 0x9F, 0x8D, 0xA3, 0xFF}, "🍣" + fffd},
		{"overlong NUL", []byte{0xC0, 0x80}, fffd + fffd},
		{"surrogate", []byte{0xED, 0xA0, 0x80}, fffd + fffd + fffd},
		{"embedded", []byte{'a', 0xE3, 0x81, 'b'}, "a" + fffd + "b"},
		{"replacement passes through", []byte(fffd + "x"), fffd + "x"},
		{"empty", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := String(tt.input); got != tt.want {
				t.Fatalf("String(% X) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func samples() [][]byte {
	return [][]byte{
		[]byte("plain ascii"),
		[]byte("あいうえお🍣🍺👨\u200D💻"),
		{0xFF, 0xFE, 0xFD},
		{0x61, 0xF1, 0x80, 0x80, 0xE1, 0x80, 0xC2, 0x62, 0x80, 0x63, 0x80, 0xBF, 0x64},
		{0xF0, 0x9F, 0x8D, 0xA3, 0xF0, 0x9F, 0x8D},
		{0xEF, 0xBF, 0xBD, 0xEF, 0xBF},
	}
}

func TestWellFormedInputUnchanged(t *testing.T) {
	for _, input := range [][]byte{[]byte("hello"), []byte("がガ🍣"), []byte(fffd)} {
		if got := Bytes(input); !bytes.Equal(got, input) {
			t.Fatalf("Bytes(%q) = %q, want input unchanged", input, got)
		}
	}
}

func TestIdempotent(t *testing.T) {
	for _, input := range samples() {
		once := Bytes(input)
		twice := Bytes(once)
		if !bytes.Equal(once, twice) {
			t.Fatalf("scrub not idempotent for % X: %q vs %q", input, once, twice)
		}
		if err := decoder.Validate(once); err != nil {
			t.Fatalf("scrubbed output still invalid: %v", err)
		}
	}
}

func TestDoesNotMutateInput(t *testing.T) {
	input := []byte{0xC0, 0x80, 'a'}
	snapshot := append([]byte(nil), input...)
	_ = Bytes(input)
	if !bytes.Equal(input, snapshot) {
		t.Fatalf("input mutated: % X", input)
	}
}

func TestReportListsReplacedSpans(t *testing.T) {
	out, spans := Report([]byte{0xF0, 0x9F, 0x8D, 0xA3, 0xFF, 'a', 0xC0})
	if string(out) != "🍣"+fffd+"a"+fffd {
		t.Fatalf("unexpected output %q", out)
	}
	want := []decoder.Span{{Start: 4, End: 5}, {Start: 6, End: 7}}
	if len(spans) != len(want) {
		t.Fatalf("spans = %+v, want %+v", spans, want)
	}
	for i := range want {
		if spans[i] != want[i] {
			t.Fatalf("span %d = %+v, want %+v", i, spans[i], want[i])
		}
	}
}

func TestTransformerMatchesBytes(t *testing.T) {
	for _, input := range samples() {
		got, _, err := transform.Bytes(Transformer{}, input)
		if err != nil {
			t.Fatalf("transform.Bytes: %v", err)
		}
		if want := Bytes(input); !bytes.Equal(got, want) {
			t.Fatalf("transformer output %q, want %q", got, want)
		}
	}
}

// oneByteReader forces the transformer to see spans split across reads.
type oneByteReader struct {
	data []byte
}

func (r *oneByteReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, io.EOF
	}
	if len(p) == 0 {
		return 0, nil
	}
	p[0] = r.data[0]
	r.data = r.data[1:]
	return 1, nil
}

func TestTransformerHandlesSplitSequences(t *testing.T) {
	for _, input := range samples() {
		reader := transform.NewReader(&oneByteReader{data: input}, Transformer{})
		got, err := io.ReadAll(reader)
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if want := Bytes(input); !bytes.Equal(got, want) {
			t.Fatalf("chunked output %q, want %q", got, want)
		}
	}
}

func TestTransformerString(t *testing.T) {
	got, _, err := transform.String(Transformer{}, strings.Repeat("\xC0\x80", 3))
	if err != nil {
		t.Fatalf("transform.String: %v", err)
	}
	if got != strings.Repeat(fffd, 6) {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestRecorderSpansAcrossReads(t *testing.T) {
	for _, input := range samples() {
		recorder := &Recorder{}
		got, err := io.ReadAll(transform.NewReader(&oneByteReader{data: input}, recorder))
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		want, wantSpans := Report(input)
		if !bytes.Equal(got, want) {
			t.Fatalf("recorder output %q, want %q", got, want)
		}
		if len(recorder.Spans) != len(wantSpans) {
			t.Fatalf("spans for % X = %+v, want %+v", input, recorder.Spans, wantSpans)
		}
		for i := range wantSpans {
			if recorder.Spans[i] != wantSpans[i] {
				t.Fatalf("span %d for % X = %+v, want %+v", i, input, recorder.Spans[i], wantSpans[i])
			}
		}
	}
}

func TestRecorderResets(t *testing.T) {
	recorder := &Recorder{}
	if _, _, err := transform.Bytes(recorder, []byte{'a', 0xFF}); err != nil {
		t.Fatalf("transform.Bytes: %v", err)
	}
	if _, _, err := transform.Bytes(recorder, []byte{0xFF}); err != nil {
		t.Fatalf("transform.Bytes: %v", err)
	}
	if len(recorder.Spans) != 1 || recorder.Spans[0] != (decoder.Span{Start: 0, End: 1}) {
		t.Fatalf("spans after reuse = %+v", recorder.Spans)
	}
}
