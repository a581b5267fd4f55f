package web2pdf

import (
	"errors"
	"testing"
	"time"

	"github.com/alnah/go-web2pdf/internal/dateutil"
)

func TestResolveDate(t *testing.T) {
	t.Parallel()

	ref := time.Date(2025, time.July, 4, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		value   string
		want    string
		wantErr error
	}{
		{name: "empty value passes through", value: "", want: ""},
		{name: "literal date passes through", value: "2023-12-01", want: "2023-12-01"},
		{name: "free text passes through", value: "Summer 2025", want: "Summer 2025"},

		{name: "auto", value: "auto", want: "2025-07-04"},
		{name: "auto ignores case", value: "AUTO", want: "2025-07-04"},

		{name: "auto with tokens", value: "auto:DD.MM.YYYY", want: "04.07.2025"},
		{name: "auto with month name", value: "auto:MMMM D, YYYY", want: "July 4, 2025"},
		{name: "auto with bracket literal", value: "auto:[Issued] YYYY", want: "Issued 2025"},

		{name: "iso preset", value: "auto:iso", want: "2025-07-04"},
		{name: "european preset", value: "auto:european", want: "04/07/2025"},
		{name: "us preset", value: "auto:us", want: "07/04/2025"},
		{name: "long preset", value: "auto:long", want: "July 4, 2025"},
		{name: "preset ignores case", value: "auto:European", want: "04/07/2025"},

		{name: "bare colon", value: "auto:", wantErr: dateutil.ErrBadFormat},
		{name: "auto with junk suffix", value: "automatic", wantErr: dateutil.ErrBadFormat},
		{name: "unclosed bracket", value: "auto:[Issued YYYY", wantErr: dateutil.ErrBadFormat},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ResolveDate(tt.value, ref)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ResolveDate(%q) error = %v, want %v", tt.value, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveDate(%q) error = %v", tt.value, err)
			}
			if got != tt.want {
				t.Errorf("ResolveDate(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}
