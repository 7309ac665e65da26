package batch

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestReadBatchFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "simple lines",
			content: "Hello world\nHow are you today\n",
			want:    []string{"Hello world", "How are you today"},
		},
		{
			name:    "skips blanks and comments",
			content: "# morning batch\n\nGood morning\n   \n# done\nGood night\n",
			want:    []string{"Good morning", "Good night"},
		},
		{
			name:    "windows line endings",
			content: "First line\r\nSecond line\r\n",
			want:    []string{"First line", "Second line"},
		},
		{
			name:    "trims whitespace",
			content: "  padded utterance  \n",
			want:    []string{"padded utterance"},
		},
		{
			name:    "empty file",
			content: "",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "batch.txt")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			got, err := ReadBatchFile(path)
			if err != nil {
				t.Fatalf("ReadBatchFile() unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ReadBatchFile() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReadBatchFileMissing(t *testing.T) {
	_, err := ReadBatchFile(filepath.Join(t.TempDir(), "nope.txt"))
	if err == nil {
		t.Error("ReadBatchFile() expected error for missing file")
	}
}
