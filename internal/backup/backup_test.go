package backup

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/tbourn/warri-apartment-hunt/internal/domain"
	"github.com/tbourn/warri-apartment-hunt/internal/repo"
	"github.com/tbourn/warri-apartment-hunt/internal/store"
)

// ---------- fakes ----------

type memSink struct {
	name string
	got  map[string][]byte
	err  error
}

func (m *memSink) Name() string { return m.name }
func (m *memSink) Put(_ context.Context, name string, data []byte) error {
	if m.err != nil {
		return m.err
	}
	if m.got == nil {
		m.got = map[string][]byte{}
	}
	m.got[name] = data
	return nil
}

type fakeS3 struct {
	in   *s3.PutObjectInput
	body []byte
	err  error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.in = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func newSource(t *testing.T) *repo.Collections {
	t.Helper()
	c := repo.NewCollections(store.NewMemory())
	if _, err := c.AddAgent(context.Background(), domain.Agent{Name: "Tega"}); err != nil {
		t.Fatalf("AddAgent: %v", err)
	}
	return c
}

var fixed = time.Date(2025, 3, 1, 2, 0, 0, 0, time.UTC)

// ---------- tests ----------

func TestObjectName(t *testing.T) {
	if got := ObjectName(fixed); got != "collections-20250301T020000Z.json" {
		t.Fatalf("ObjectName: %q", got)
	}
}

func TestRun_WritesEverySink(t *testing.T) {
	a, b := &memSink{name: "a"}, &memSink{name: "b"}
	bk := New(newSource(t), a, b)
	bk.Now = func() time.Time { return fixed }

	name, err := bk.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(a.got) != 1 || len(b.got) != 1 {
		t.Fatalf("sinks not written: a=%d b=%d", len(a.got), len(b.got))
	}
	var snap Snapshot
	if err := json.Unmarshal(a.got[name], &snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !snap.TakenAt.Equal(fixed) || len(snap.Collections) != len(domain.AllCollections) {
		t.Fatalf("snapshot: %+v", snap)
	}
	var agents []domain.Agent
	_ = json.Unmarshal(snap.Collections[domain.Agents], &agents)
	if len(agents) != 1 || agents[0].Name != "Tega" {
		t.Fatalf("agents: %+v", agents)
	}
}

func TestRun_FailingSinkDoesNotStopOthers(t *testing.T) {
	bad := &memSink{name: "bad", err: errors.New("disk full")}
	good := &memSink{name: "good"}
	bk := New(newSource(t), bad, good)

	_, err := bk.Run(context.Background())
	if err == nil {
		t.Fatalf("expected joined error")
	}
	if len(good.got) != 1 {
		t.Fatalf("good sink skipped")
	}
}

func TestRun_NoSinks(t *testing.T) {
	if _, err := New(newSource(t)).Run(context.Background()); err == nil {
		t.Fatalf("expected error without sinks")
	}
}

func TestFileSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "backups")
	fs := FileSink{Dir: dir}
	if err := fs.Put(context.Background(), "x.json", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	b, err := os.ReadFile(filepath.Join(dir, "x.json"))
	if err != nil || string(b) != `{"a":1}` {
		t.Fatalf("readback: %s %v", b, err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %v", entries)
	}
}

func TestS3Sink_Put(t *testing.T) {
	f := &fakeS3{}
	s := &S3Sink{client: f, bucket: "bk", prefix: "warri/prod"}
	if err := s.Put(context.Background(), "x.json", []byte(`[]`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if *f.in.Bucket != "bk" || *f.in.Key != "warri/prod/x.json" || *f.in.ContentType != "application/json" || string(f.body) != "[]" {
		t.Fatalf("unexpected input: bucket=%s key=%s body=%s", *f.in.Bucket, *f.in.Key, f.body)
	}

	f.err = errors.New("denied")
	if err := s.Put(context.Background(), "y.json", nil); err == nil {
		t.Fatalf("expected error")
	}
	if (&S3Sink{}).Key("a.json") != "a.json" {
		t.Fatalf("no prefix key")
	}
}

func TestNewS3Sink_RequiresBucket(t *testing.T) {
	if _, err := NewS3Sink(context.Background(), S3Config{}); err == nil {
		t.Fatalf("expected error without bucket")
	}
	s, err := NewS3Sink(context.Background(), S3Config{Bucket: "b", Endpoint: "http://localhost:9000", AccessKeyID: "k", SecretAccessKey: "s"})
	if err != nil || s.Name() != "s3" {
		t.Fatalf("NewS3Sink: %v", err)
	}
}

func TestScheduler(t *testing.T) {
	s := NewScheduler(context.Background())
	if err := s.Add("not a cron", "bad", func(context.Context) error { return nil }); err == nil {
		t.Fatalf("expected invalid cron error")
	}
	if err := s.Add("@daily", "backup", BackupJob(New(newSource(t), &memSink{name: "m"}))); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("Len: %d", s.Len())
	}
	s.Start()
	<-s.Stop().Done()
}

func TestScheduler_RunTracesJob(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })
	rec := tracetest.NewSpanRecorder()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec)))

	sink := &memSink{name: "m"}
	s := NewScheduler(context.Background())
	s.run("backup", BackupJob(New(newSource(t), sink)))
	s.run("idempotency-purge", func(context.Context) error { return errors.New("locked") })

	spans := rec.Ended()
	if len(spans) != 2 || spans[0].Name() != "job.backup" || spans[1].Name() != "job.idempotency-purge" {
		t.Fatalf("spans = %v", spans)
	}
	if spans[1].Status().Code != codes.Error {
		t.Fatalf("failed job status = %v", spans[1].Status())
	}
	if len(sink.got) != 1 {
		t.Fatalf("backup job wrote %d objects", len(sink.got))
	}
}
