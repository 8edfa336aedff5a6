package sourcemap

import "testing"

func TestVLQRoundTrip(t *testing.T) {
	t.Parallel()

	known := map[int]string{0: "A", 1: "C", -1: "D", 15: "e", 16: "gB", 123: "2H", -123: "3H"}
	for value, want := range known {
		if got := string(appendVLQ(nil, value)); got != want {
			t.Errorf("appendVLQ(%d) = %q, want %q", value, got, want)
		}
	}

	for _, value := range []int{0, 1, -1, 31, 32, -32, 1000, -99999, 1 << 30} {
		encoded := string(appendVLQ(nil, value))
		got, rest, err := decodeVLQ(encoded + "X")
		if err != nil {
			t.Fatalf("decodeVLQ(%q) error = %v", encoded, err)
		}
		if got != value || rest != "X" {
			t.Errorf("decodeVLQ(%q) = %d, %q; want %d, \"X\"", encoded, got, rest, value)
		}
	}
}

func TestDecodeVLQErrors(t *testing.T) {
	t.Parallel()

	if _, _, err := decodeVLQ("g"); err == nil {
		t.Error("expected truncation error")
	}
	if _, _, err := decodeVLQ("!"); err == nil {
		t.Error("expected invalid character error")
	}
}
