package errors

import "testing"

func TestValidateNodeID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"valid simple", "research-agent-1", false},
		{"valid with underscore", "node_42", false},
		{"empty", "", true},
		{"path traversal", "../etc/passwd", true},
		{"double slash", "a//b", true},
		{"backslash", "a\\b", true},
		{"null byte", "a\x00b", true},
		{"control character", "a\tb", true},
		{"too long", string(make([]byte, 300)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNodeID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNodeID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidNode) {
				t.Errorf("ValidateNodeID(%q) code = %v, want %v", tt.id, GetCode(err), ErrCodeInvalidNode)
			}
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	if err := ValidateOutputPath("out/graph.svg"); err != nil {
		t.Errorf("ValidateOutputPath() unexpected error: %v", err)
	}
	if err := ValidateOutputPath(""); err == nil {
		t.Error("ValidateOutputPath(\"\") expected error")
	}
	if err := ValidateOutputPath("a\x00b"); err == nil {
		t.Error("ValidateOutputPath(null byte) expected error")
	}
}
