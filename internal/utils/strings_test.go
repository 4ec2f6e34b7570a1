package utils

import "testing"

func TestSplitList(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: nil,
		},
		{
			name:     "single value",
			input:    "10.0.0.0/8",
			expected: []string{"10.0.0.0/8"},
		},
		{
			name:     "spaces quotes and empty entries",
			input:    ` https://a.example/graphql, "https://b.example/graphql" ,, 'https://c.example/graphql'`,
			expected: []string{"https://a.example/graphql", "https://b.example/graphql", "https://c.example/graphql"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SplitList(tt.input)
			if len(result) != len(tt.expected) {
				t.Fatalf("SplitList() = %v, want %v", result, tt.expected)
			}
			for i := range result {
				if result[i] != tt.expected[i] {
					t.Errorf("SplitList()[%d] = %q, want %q", i, result[i], tt.expected[i])
				}
			}
		})
	}
}
