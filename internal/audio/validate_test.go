package audio

import "testing"

func TestValidateText(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{"sentence", "The Lord is my shepherd", false},
		{"non-latin", "主是我的牧者", false},
		{"empty", "", true},
		{"whitespace only", "   \t\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateText(tt.text)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateText(%q) error = %v, wantErr %v", tt.text, err, tt.wantErr)
			}
			if err != nil && err.Error() != "text cannot be empty" {
				t.Errorf("unexpected message %q", err.Error())
			}
		})
	}
}
