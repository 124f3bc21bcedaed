package directive

import "testing"

func TestCodeBlock(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		language string
		want     string
	}{
		{
			name:     "single line",
			text:     "print(1)",
			language: "python",
			want:     ".. code-block:: python\n\n   print(1)",
		},
		{
			name:     "blank lines stay empty",
			text:     "def f():\n    return 1\n\nf()",
			language: "python",
			want:     ".. code-block:: python\n\n   def f():\n       return 1\n\n   f()",
		},
		{
			name:     "no language",
			text:     "echo hi",
			language: "",
			want:     ".. code-block:: text\n\n   echo hi",
		},
		{
			name:     "outer blank lines dropped",
			text:     "\n\nSELECT 1\n\n",
			language: "sql",
			want:     ".. code-block:: sql\n\n   SELECT 1",
		},
		{
			name:     "trailing spaces trimmed",
			text:     "x = 1   \n  \ny = 2",
			language: "python",
			want:     ".. code-block:: python\n\n   x = 1\n\n   y = 2",
		},
		{
			name:     "empty text",
			text:     "",
			language: "go",
			want:     ".. code-block:: go",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeBlock(tt.text, tt.language); got != tt.want {
				t.Errorf("CodeBlock() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}
