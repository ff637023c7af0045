package merge

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wizzomafizzo/settingsync/internal/logging"
	"github.com/wizzomafizzo/settingsync/internal/settings"
)

func parse(t *testing.T, content string) *settings.Document {
	t.Helper()
	doc, err := settings.Parse("test.json", []byte(content))
	require.NoError(t, err)
	return doc
}

func tasksOf(t *testing.T, doc *settings.Document) map[string]any {
	t.Helper()
	tasks, err := doc.Tasks()
	require.NoError(t, err)
	return tasks
}

func TestMerge_CopiesListAndFlattened(t *testing.T) {
	t.Parallel()

	target := parse(t, `{"tasks": {}}`)
	custom := parse(t, `{"tasks": {"C_ARGS": ["-Wall", "-O2"]}}`)

	report, err := New(" ").Merge(context.Background(), target, custom)
	require.NoError(t, err)

	tasks := tasksOf(t, target)
	assert.Equal(t, []any{"-Wall", "-O2"}, tasks["C_ARGS"])
	assert.Equal(t, "-Wall -O2", tasks["c_args"])
	assert.Equal(t, []string{"C_ARGS"}, report.Merged)
	assert.Equal(t, []string{"C_ARGS_BASE", "CPP_ARGS_BASE", "CPP_ARGS"}, report.Skipped)
}

func TestMerge_TabSeparator(t *testing.T) {
	t.Parallel()

	target := parse(t, `{"tasks": {}}`)
	custom := parse(t, `{"tasks": {"CPP_ARGS": ["-std=c++17", "-g"]}}`)

	_, err := New("\t").Merge(context.Background(), target, custom)
	require.NoError(t, err)

	assert.Equal(t, "-std=c++17\t-g", tasksOf(t, target)["cpp_args"])
}

func TestMerge_AbsentKeysLeaveTargetUntouched(t *testing.T) {
	t.Parallel()

	target := parse(t, `{"tasks": {
		"C_ARGS_BASE": ["-I", "include"], "c_args_base": "-I include",
		"CPP_ARGS": ["-x"], "cpp_args": "something else"
	}}`)
	custom := parse(t, `{"tasks": {"C_ARGS": ["-O3"]}}`)

	_, err := New(" ").Merge(context.Background(), target, custom)
	require.NoError(t, err)

	tasks := tasksOf(t, target)
	assert.Equal(t, []any{"-I", "include"}, tasks["C_ARGS_BASE"])
	assert.Equal(t, "-I include", tasks["c_args_base"])
	assert.Equal(t, []any{"-x"}, tasks["CPP_ARGS"])
	assert.Equal(t, "something else", tasks["cpp_args"], "existing flattened value is not recomputed")
	assert.Equal(t, "-O3", tasks["c_args"])
}

func TestMerge_BackfillsMissingFlattenedKeys(t *testing.T) {
	t.Parallel()

	target := parse(t, `{"tasks": {"CPP_ARGS_BASE": ["-a", "-b"]}}`)
	custom := parse(t, `{"tasks": {}}`)

	report, err := New(" ").Merge(context.Background(), target, custom)
	require.NoError(t, err)

	tasks := tasksOf(t, target)
	assert.Empty(t, tasks["c_args_base"])
	assert.Empty(t, tasks["c_args"])
	assert.Equal(t, "-a -b", tasks["cpp_args_base"], "back-fill uses the list already under tasks")
	assert.Empty(t, tasks["cpp_args"])
	assert.ElementsMatch(t, []string{"c_args_base", "c_args", "cpp_args_base", "cpp_args"}, report.Backfilled)
}

// A custom document may carry argument lists at its top level instead of
// under tasks. Those are not read: tasks is the only source for both the
// copy and the back-fill.
func TestMerge_IgnoresTopLevelArgFieldsInCustom(t *testing.T) {
	t.Parallel()

	target := parse(t, `{"tasks": {}}`)
	custom := parse(t, `{"C_ARGS": ["-top-level"], "tasks": {}}`)

	report, err := New(" ").Merge(context.Background(), target, custom)
	require.NoError(t, err)

	tasks := tasksOf(t, target)
	assert.Empty(t, tasks["c_args"])
	assert.NotContains(t, tasks, "C_ARGS")
	assert.Contains(t, report.Skipped, "C_ARGS")
}

func TestMerge_BackfillReadsTargetNotCustom(t *testing.T) {
	t.Parallel()

	target := parse(t, `{"tasks": {"CPP_ARGS_BASE": ["-from", "target"]}}`)
	custom := parse(t, `{"CPP_ARGS_BASE": ["-custom-top"], "tasks": {"C_ARGS": ["-g"]}}`)

	report, err := New(" ").Merge(context.Background(), target, custom)
	require.NoError(t, err)

	tasks := tasksOf(t, target)
	assert.Equal(t, "-from target", tasks["cpp_args_base"])
	assert.Equal(t, "", tasks["cpp_args"])
	assert.Equal(t, "-g", tasks["c_args"])
	assert.Contains(t, report.Backfilled, "cpp_args_base")
	assert.NotContains(t, report.Backfilled, "c_args")
}

func TestMerge_Idempotent(t *testing.T) {
	t.Parallel()

	custom := parse(t, `{"tasks": {
		"C_ARGS_BASE": ["-std=c11"], "C_ARGS": ["-Wall", "-O2"], "CPP_ARGS": []
	}}`)
	target := parse(t, `{"editor.tabSize": 2, "tasks": {"CPP_ARGS_BASE": ["-x"]}}`)

	merger := New(" ")
	_, err := merger.Merge(context.Background(), target, custom)
	require.NoError(t, err)
	once, err := settings.Marshal(target, settings.DefaultIndent)
	require.NoError(t, err)

	_, err = merger.Merge(context.Background(), target, custom)
	require.NoError(t, err)
	twice, err := settings.Marshal(target, settings.DefaultIndent)
	require.NoError(t, err)

	assert.Equal(t, string(once), string(twice))
}

func TestMerge_SameDocument(t *testing.T) {
	t.Parallel()

	doc := parse(t, `{"tasks": {"C_ARGS": ["-g", "-O0"]}, "keep": true}`)

	_, err := New(" ").Merge(context.Background(), doc, doc)
	require.NoError(t, err)

	tasks := tasksOf(t, doc)
	assert.Equal(t, []any{"-g", "-O0"}, tasks["C_ARGS"])
	assert.Equal(t, "-g -O0", tasks["c_args"])
	keep, ok := doc.Get("keep")
	assert.True(t, ok)
	assert.Equal(t, true, keep)
}

func TestMerge_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		target  string
		custom  string
		wantErr string
	}{
		{name: "custom without tasks", target: `{"tasks": {}}`, custom: `{}`, wantErr: "custom settings"},
		{name: "target without tasks", target: `{}`, custom: `{"tasks": {}}`, wantErr: "target settings"},
		{name: "field not a list", target: `{"tasks": {}}`, custom: `{"tasks": {"C_ARGS": "-Wall"}}`, wantErr: "tasks.C_ARGS"},
		{name: "list of numbers", target: `{"tasks": {}}`, custom: `{"tasks": {"CPP_ARGS": [1]}}`, wantErr: "tasks.CPP_ARGS"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			target := parse(t, tt.target)
			before, err := settings.Marshal(target, settings.DefaultIndent)
			require.NoError(t, err)

			_, err = New(" ").Merge(context.Background(), target, parse(t, tt.custom))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)

			after, err := settings.Marshal(target, settings.DefaultIndent)
			require.NoError(t, err)
			assert.Equal(t, string(before), string(after), "failed merge leaves target unchanged")
		})
	}
}

func TestMerge_InvalidFieldLeavesEarlierFieldsUntouched(t *testing.T) {
	t.Parallel()

	target := parse(t, `{"tasks": {}}`)
	custom := parse(t, `{"tasks": {"C_ARGS_BASE": ["-ok"], "CPP_ARGS": {"not": "a list"}}}`)

	_, err := New(" ").Merge(context.Background(), target, custom)

	var invalid *InvalidFieldError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "CPP_ARGS", invalid.Key)
	assert.Empty(t, tasksOf(t, target))
}

func TestMerge_LogsSkippedFields(t *testing.T) {
	t.Parallel()

	var logs strings.Builder
	ctx, err := logging.New(context.Background(), nil, logging.Config{
		Writer: &logs,
		Level:  zerolog.DebugLevel,
	})
	require.NoError(t, err)

	_, err = New(" ").Merge(ctx, parse(t, `{"tasks": {}}`), parse(t, `{"tasks": {"C_ARGS": []}}`))
	require.NoError(t, err)

	output := logs.String()
	assert.Contains(t, output, `"key":"CPP_ARGS"`)
	assert.Contains(t, output, "skipping")
	assert.Contains(t, output, "merged argument field")
}

func TestJoinSplit_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		separator string
		list      []string
	}{
		{name: "space", separator: " ", list: []string{"-Wall", "-O2", "-std=c11"}},
		{name: "tab keeps spaced elements", separator: "\t", list: []string{"-D NAME=1", "-I include dir"}},
		{name: "single", separator: " ", list: []string{"-g"}},
		{name: "empty", separator: " ", list: []string{}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			flattened := Join(tt.list, tt.separator)
			assert.Equal(t, strings.Join(tt.list, tt.separator), flattened)
			assert.Equal(t, tt.list, Split(flattened, tt.separator))
		})
	}
}

func TestNew_DefaultSeparator(t *testing.T) {
	t.Parallel()
	assert.Equal(t, " ", New("").Separator)
}
