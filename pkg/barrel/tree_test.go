package barrel

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"autobarrel/pkg/discovery"
)

func TestRenderTree(t *testing.T) {
	files := []discovery.CandidateFile{
		{RelativePath: "a.ts"},
		{RelativePath: "B.ts"},
		{RelativePath: "components/button.tsx"},
		{RelativePath: "components/forms/input.tsx"},
		{RelativePath: "utils/format.ts"},
	}

	want := "src/\n" +
		"├── components/\n" +
		"│   ├── forms/\n" +
		"│   │   └── input.tsx\n" +
		"│   └── button.tsx\n" +
		"├── utils/\n" +
		"│   └── format.ts\n" +
		"├── a.ts\n" +
		"└── B.ts\n"

	assert.Equal(t, want, RenderTree("src", files))
}

func TestRenderTreeEmpty(t *testing.T) {
	assert.Equal(t, "src/\n", RenderTree("src/", nil))
}
