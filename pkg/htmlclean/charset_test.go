package htmlclean

import (
	"strings"
	"testing"

	"golang.org/x/text/encoding/korean"
)

func TestDecodeToUTF8PassthroughUTF8(t *testing.T) {
	in := `<meta charset="utf-8"><table><tr><td>한글</td></tr></table>`
	got, err := DecodeToUTF8([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	if got != in {
		t.Errorf("UTF-8 content was modified")
	}
}

func TestDecodeToUTF8NoDeclaration(t *testing.T) {
	in := "<table><tr><td>한글</td></tr></table>"
	got, err := DecodeToUTF8([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	if got != in {
		t.Errorf("undeclared content was modified")
	}
}

func TestDecodeToUTF8EUCKR(t *testing.T) {
	utf8Doc := `<meta charset="euc-kr"><table><tr><td>대한민국</td></tr></table>`
	enc, err := korean.EUCKR.NewEncoder().Bytes([]byte(utf8Doc))
	if err != nil {
		t.Fatal(err)
	}

	got, err := DecodeToUTF8(enc)
	if err != nil {
		t.Fatalf("DecodeToUTF8: %v", err)
	}
	if !strings.Contains(got, "대한민국") {
		t.Errorf("EUC-KR text not decoded: %q", got)
	}
}

func TestDecodeToUTF8UnknownCharset(t *testing.T) {
	in := `<meta charset="shift_jis"><table></table>`
	got, err := DecodeToUTF8([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	if got != in {
		t.Errorf("unknown charset content was modified")
	}
}

func TestSniffCharset(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`<meta charset="EUC-KR">`, "euc-kr"},
		{`<meta http-equiv="Content-Type" content="text/html; charset=ks_c_5601-1987">`, "ks_c_5601-1987"},
		{`<meta charset='utf-8'>`, "utf-8"},
		{`<table></table>`, ""},
	}
	for _, tt := range tests {
		if got := sniffCharset(tt.in); got != tt.want {
			t.Errorf("sniffCharset(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
