package main

import (
	"slices"
	"testing"
)

func TestIgnoredInFileMode(t *testing.T) {
	tests := []struct {
		name string
		opts options
		want []string
	}{
		{"defaults warn nothing", options{duration: 60}, nil},
		{"non-default duration warns", options{duration: 30}, []string{"-duration"}},
		{
			"every recording flag warns",
			options{duration: 10, manual: true, setup: true, device: "usb mic", backup: true},
			[]string{"-duration", "-manual", "-setup", "-device", "-backup"},
		},
		{"lang and service stay silent", options{duration: 60, lang: "pl", service: "groq"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ignoredInFileMode(&tt.opts)
			if !slices.Equal(got, tt.want) {
				t.Errorf("ignoredInFileMode = %v, want %v", got, tt.want)
			}
		})
	}
}
