package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Taller-api/internal/application/ports"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/pkg/config"
)

var (
	pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")
	pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\ntrailer\n<<>>\n%%EOF\n")
)

func limits() config.UploadConfig {
	return config.UploadConfig{MaxFileBytes: 1 << 20, MaxFiles: 3}
}

func newDiskUploader(t *testing.T) (*Uploader, string) {
	t.Helper()
	dir := t.TempDir()
	d, err := NewDisk(dir, "/uploads")
	require.NoError(t, err)
	return NewUploader(d, limits(), nil), dir
}

func TestDisk_StoreYRemove(t *testing.T) {
	u, dir := newDiskUploader(t)
	ctx := context.Background()

	refs, err := u.Store(ctx, []ports.Upload{
		{Field: "fotos", Filename: "a.png", Content: pngBytes},
		{Field: "firma_supervisor", Filename: "f.pdf", Content: pdfBytes},
	})
	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.True(t, strings.HasPrefix(refs[0], "/uploads/fotos-"))
	assert.True(t, strings.HasSuffix(refs[0], ".png"))
	assert.True(t, strings.HasSuffix(refs[1], ".pdf"))

	_, err = os.Stat(filepath.Join(dir, filepath.Base(refs[0])))
	require.NoError(t, err)

	require.NoError(t, u.Remove(ctx, append(refs, "/otra/ruta.png", "/uploads/no-existe.png")))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStore_RechazaTipoNoPermitido(t *testing.T) {
	u, dir := newDiskUploader(t)

	_, err := u.Store(context.Background(), []ports.Upload{
		{Field: "fotos", Filename: "ok.png", Content: pngBytes},
		{Field: "firma_conductor", Filename: "firma.png", Content: []byte("hola, no soy una imagen")},
	})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "firma_conductor")

	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries, "nada se escribe si el lote es inválido")
}

func TestStore_Limites(t *testing.T) {
	u, _ := newDiskUploader(t)
	ctx := context.Background()

	many := make([]ports.Upload, 4)
	for i := range many {
		many[i] = ports.Upload{Field: "fotos", Content: pngBytes}
	}
	_, err := u.Store(ctx, many)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	big := append(append([]byte{}, pdfBytes...), make([]byte, 1<<20)...)
	_, err = u.Store(ctx, []ports.Upload{{Field: "fotos", Filename: "big.pdf", Content: big}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = u.Store(ctx, []ports.Upload{{Field: "fotos", Content: nil}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	refs, err := u.Store(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, refs)
}

type flakyBackend struct {
	puts    int
	failAt  int
	deleted []string
}

func (f *flakyBackend) Put(_ context.Context, key, _ string, _ []byte) (string, error) {
	f.puts++
	if f.puts == f.failAt {
		return "", errors.New("disco lleno")
	}
	return "/uploads/" + key, nil
}

func (f *flakyBackend) Delete(_ context.Context, ref string) error {
	f.deleted = append(f.deleted, ref)
	return nil
}

func TestStore_FalloParcialLimpia(t *testing.T) {
	b := &flakyBackend{failAt: 3}
	u := NewUploader(b, limits(), nil)

	_, err := u.Store(context.Background(), []ports.Upload{
		{Field: "fotos", Content: pngBytes},
		{Field: "fotos", Content: pngBytes},
		{Field: "fotos", Content: pngBytes},
	})
	require.Error(t, err)
	assert.Len(t, b.deleted, 2)
}

type fakeS3 struct {
	put    []*s3.PutObjectInput
	delete []*s3.DeleteObjectInput
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.put = append(f.put, in)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.delete = append(f.delete, in)
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3_PutYDelete(t *testing.T) {
	api := &fakeS3{}
	b := newS3WithClient(api, "taller", "https://cdn.example.com/")
	u := NewUploader(b, limits(), nil)
	ctx := context.Background()

	refs, err := u.Store(ctx, []ports.Upload{{Field: "firma_entrega", Content: pngBytes}})
	require.NoError(t, err)
	require.Len(t, api.put, 1)
	assert.Equal(t, "taller", *api.put[0].Bucket)
	assert.Equal(t, "image/png", *api.put[0].ContentType)
	assert.True(t, strings.HasPrefix(refs[0], "https://cdn.example.com/evidencias/firma_entrega-"))

	require.NoError(t, u.Remove(ctx, []string{refs[0], "/uploads/local.png"}))
	require.Len(t, api.delete, 1)
	assert.Equal(t, *api.put[0].Key, *api.delete[0].Key)
}

func TestNewS3_Validacion(t *testing.T) {
	_, err := NewS3(context.Background(), config.StorageConfig{AccessKey: "k", SecretKey: "s"})
	assert.ErrorContains(t, err, "bucket is required")

	_, err = NewS3(context.Background(), config.StorageConfig{Bucket: "b"})
	assert.ErrorContains(t, err, "secret key are required")
}

func TestPublicBaseURL(t *testing.T) {
	assert.Equal(t, "https://cdn", publicBaseURL(config.StorageConfig{PublicBaseURL: "https://cdn", Bucket: "b"}, "", "us-east-1"))
	assert.Equal(t, "http://minio:9000/b", publicBaseURL(config.StorageConfig{Bucket: "b"}, "http://minio:9000", "us-east-1"))
	assert.Equal(t, "https://b.s3.sa-east-1.amazonaws.com", publicBaseURL(config.StorageConfig{Bucket: "b"}, "", "sa-east-1"))
}
