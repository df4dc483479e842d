package ingest

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"codeberg.org/hadithsearch/server/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmbedder struct {
	calls    [][]string
	failCall int // 1-based call number to fail, 0 = never
}

func (f *fakeEmbedder) GenerateEmbeddings(_ context.Context, texts []string) ([][]float32, error) {
	f.calls = append(f.calls, texts)

	if f.failCall == len(f.calls) {
		return nil, fmt.Errorf("rate limit exceeded")
	}

	embeddings := make([][]float32, len(texts))
	for i := range texts {
		embeddings[i] = []float32{float32(len(texts[i])), float32(i)}
	}

	return embeddings, nil
}

type fakeStore struct {
	batches   [][]store.Hadith
	existing  map[string]bool
	failCall  int // 1-based insert call number to fail, 0 = never
	insertNum int
}

func (f *fakeStore) InsertHadithBatch(_ context.Context, rows []store.Hadith) error {
	f.insertNum++

	if f.failCall == f.insertNum {
		return fmt.Errorf("connection reset")
	}

	f.batches = append(f.batches, rows)
	return nil
}

func (f *fakeStore) ExistingIDs(_ context.Context, ids []string) (map[string]bool, error) {
	found := make(map[string]bool)

	for _, id := range ids {
		if f.existing[id] {
			found[id] = true
		}
	}

	return found, nil
}

func (f *fakeStore) insertedCount() int {
	total := 0
	for _, b := range f.batches {
		total += len(b)
	}

	return total
}

// builds a CSV source with n sequential data rows
func buildCSV(n int) string {
	var sb strings.Builder
	sb.WriteString("id,hadith_id,source,chapter_no,hadith_no,chapter,chain_indx,text_ar,text_en\n")

	for i := 1; i <= n; i++ {
		fmt.Fprintf(&sb, "%d,h%d,Sahih Bukhari,1,%d,Revelation,%d,nass %d,text %d\n", i, i, i, i, i, i)
	}

	return sb.String()
}

func TestRun_SmallStreamSingleBatch(t *testing.T) {
	csvData := "id,hadith_id,source,chapter_no,hadith_no,chapter,chain_indx,text_ar,text_en\n" +
		"1,h1,Sahih Bukhari,1,1,Revelation,1,alif,A\n" +
		"2,h2,Sahih Bukhari,1,2,Revelation,2,ba,B\n" +
		"3,h3,Sahih Bukhari,1,3,Revelation,3,ta,C\n"

	embedder := &fakeEmbedder{}
	st := &fakeStore{}
	pipeline := NewPipeline(embedder, st, Options{BatchSize: 50, StartLine: 1})

	report, err := pipeline.Run(context.Background(), strings.NewReader(csvData))

	require.NoError(t, err)
	require.Len(t, embedder.calls, 1, "one partial batch must be one embedding call")
	assert.Equal(t, []string{"A", "B", "C"}, embedder.calls[0])

	require.Len(t, st.batches, 1)
	require.Len(t, st.batches[0], 3)

	// each record carries the vector matching its position in the batch
	for i, h := range st.batches[0] {
		assert.Equal(t, float32(i), h.Embedding[1], "row %d has wrong vector", i)
	}

	assert.Equal(t, 3, report.RowsRead)
	assert.Equal(t, 3, report.RowsInserted)
	assert.Equal(t, 0, report.BatchesFailed)
}

func TestRun_OneEmbeddingCallPerBatch(t *testing.T) {
	embedder := &fakeEmbedder{}
	st := &fakeStore{}
	pipeline := NewPipeline(embedder, st, Options{BatchSize: 50})

	_, err := pipeline.Run(context.Background(), strings.NewReader(buildCSV(50)))

	require.NoError(t, err)
	require.Len(t, embedder.calls, 1)
	assert.Len(t, embedder.calls[0], 50)
}

func TestRun_FailedBatchIsIsolated(t *testing.T) {
	embedder := &fakeEmbedder{failCall: 2} // second batch (rows 51-100) fails to embed
	st := &fakeStore{}
	pipeline := NewPipeline(embedder, st, Options{BatchSize: 50})

	report, err := pipeline.Run(context.Background(), strings.NewReader(buildCSV(120)))

	require.NoError(t, err, "a failed batch must not abort the stream")
	assert.Len(t, embedder.calls, 3, "all three batches must be attempted")
	assert.Equal(t, 70, st.insertedCount(), "batches 1 and 3 survive")
	assert.Equal(t, 70, report.RowsInserted)
	assert.Equal(t, 1, report.BatchesFailed)
}

func TestRun_FailedInsertIsIsolated(t *testing.T) {
	embedder := &fakeEmbedder{}
	st := &fakeStore{failCall: 1} // first insert fails
	pipeline := NewPipeline(embedder, st, Options{BatchSize: 50})

	report, err := pipeline.Run(context.Background(), strings.NewReader(buildCSV(80)))

	require.NoError(t, err)
	assert.Equal(t, 30, st.insertedCount(), "second batch still lands")
	assert.Equal(t, 1, report.BatchesFailed)
	assert.Equal(t, 30, report.RowsInserted)
}

func TestRun_ResumeOffsetSkipsProcessedRows(t *testing.T) {
	embedder := &fakeEmbedder{}
	st := &fakeStore{}
	pipeline := NewPipeline(embedder, st, Options{BatchSize: 50, StartLine: 51})

	report, err := pipeline.Run(context.Background(), strings.NewReader(buildCSV(100)))

	require.NoError(t, err)
	assert.Equal(t, 50, report.RowsSkipped)
	assert.Equal(t, 50, report.RowsInserted)

	// rows 1-50 must never reach the embedder
	for _, call := range embedder.calls {
		for _, text := range call {
			assert.NotContains(t, []string{"text 1", "text 50"}, text)
		}
	}

	require.Len(t, st.batches, 1)
	assert.Equal(t, 51, st.batches[0][0].HadithNo)
	assert.Equal(t, 100, st.batches[0][len(st.batches[0])-1].HadithNo)
}

func TestRun_QuarantinesMalformedRows(t *testing.T) {
	csvData := "id,hadith_id,source,chapter_no,hadith_no,chapter,chain_indx,text_ar,text_en\n" +
		"1,h1,Sahih Bukhari,1,1,Revelation,1,alif,A\n" +
		"2,h2,Sahih Bukhari,nan,nan,Revelation,2,ba,B\n" +
		"3,h3,Sahih Bukhari,1,3,Revelation,3,ta,C\n"

	embedder := &fakeEmbedder{}
	st := &fakeStore{}
	pipeline := NewPipeline(embedder, st, Options{BatchSize: 50})

	report, err := pipeline.Run(context.Background(), strings.NewReader(csvData))

	require.NoError(t, err)
	assert.Equal(t, 1, report.RowsQuarantined)
	assert.Equal(t, 2, report.RowsInserted)
	require.Len(t, embedder.calls, 1)
	assert.Equal(t, []string{"A", "C"}, embedder.calls[0])
}

func TestRun_SkipExistingFiltersBeforeEmbedding(t *testing.T) {
	embedder := &fakeEmbedder{}
	st := &fakeStore{existing: map[string]bool{"h1": true, "h3": true}}
	pipeline := NewPipeline(embedder, st, Options{BatchSize: 50, SkipExisting: true})

	report, err := pipeline.Run(context.Background(), strings.NewReader(buildCSV(4)))

	require.NoError(t, err)
	assert.Equal(t, 2, report.RowsFiltered)
	assert.Equal(t, 2, report.RowsInserted)
	require.Len(t, embedder.calls, 1)
	assert.Equal(t, []string{"text 2", "text 4"}, embedder.calls[0])
}

func TestRun_DuplicatesInsertedWhenSkipExistingOff(t *testing.T) {
	embedder := &fakeEmbedder{}
	st := &fakeStore{existing: map[string]bool{"h1": true}}
	pipeline := NewPipeline(embedder, st, Options{BatchSize: 50})

	report, err := pipeline.Run(context.Background(), strings.NewReader(buildCSV(2)))

	require.NoError(t, err)
	assert.Equal(t, 0, report.RowsFiltered)
	assert.Equal(t, 2, report.RowsInserted)
}

func TestRun_InvalidHeader(t *testing.T) {
	csvData := "foo,bar\n1,2\n"

	pipeline := NewPipeline(&fakeEmbedder{}, &fakeStore{}, Options{})

	_, err := pipeline.Run(context.Background(), strings.NewReader(csvData))

	assert.Error(t, err)
}
