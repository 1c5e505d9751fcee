package s3

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/jobboard/internal/domain"
)

type fakeStore struct {
	objects map[string][]byte
	types   map[string]string
	buckets map[string]bool
	putErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}, types: map[string]string{}, buckets: map[string]bool{}}
}

func (f *fakeStore) PutObject(_ context.Context, _, object string, r io.Reader, _ int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if f.putErr != nil {
		return minio.UploadInfo{}, f.putErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	f.objects[object] = data
	f.types[object] = opts.ContentType
	return minio.UploadInfo{Key: object, Size: int64(len(data))}, nil
}

func (f *fakeStore) RemoveObject(_ context.Context, _, object string, _ minio.RemoveObjectOptions) error {
	delete(f.objects, object)
	return nil
}

func (f *fakeStore) BucketExists(_ context.Context, bucket string) (bool, error) {
	return f.buckets[bucket], nil
}

func (f *fakeStore) MakeBucket(_ context.Context, bucket string, _ minio.MakeBucketOptions) error {
	f.buckets[bucket] = true
	return nil
}

func TestUpload_KeyKeepsExtension(t *testing.T) {
	fs := newFakeStore()
	s := &Storage{cl: fs, bucket: "images"}

	key, err := s.Upload(context.Background(), &domain.Asset{Name: "Logo.PNG", ContentType: "image/png", Data: []byte("png")})
	require.NoError(t, err)
	assert.Regexp(t, `^[0-9a-f-]{36}\.png$`, key)
	assert.Equal(t, []byte("png"), fs.objects[key])
	assert.Equal(t, "image/png", fs.types[key])
}

func TestUpload_DefaultContentType(t *testing.T) {
	fs := newFakeStore()
	s := &Storage{cl: fs, bucket: "images"}

	key, err := s.Upload(context.Background(), &domain.Asset{Name: "blob", Data: []byte{1}})
	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", fs.types[key])
}

func TestUpload_Empty(t *testing.T) {
	s := &Storage{cl: newFakeStore(), bucket: "images"}

	_, err := s.Upload(context.Background(), &domain.Asset{Name: "a.png"})
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestUpload_PutError(t *testing.T) {
	fs := newFakeStore()
	fs.putErr = errors.New("denied")
	s := &Storage{cl: fs, bucket: "images"}

	_, err := s.Upload(context.Background(), &domain.Asset{Name: "a.png", Data: []byte{1}})
	require.ErrorIs(t, err, fs.putErr)
}

func TestDelete(t *testing.T) {
	fs := newFakeStore()
	fs.objects["k.png"] = []byte{1}
	s := &Storage{cl: fs, bucket: "images"}

	require.NoError(t, s.Delete(context.Background(), "k.png"))
	assert.NotContains(t, fs.objects, "k.png")
	require.NoError(t, s.Delete(context.Background(), ""))
}

func TestEnsureBucket(t *testing.T) {
	fs := newFakeStore()
	s := &Storage{cl: fs, bucket: "images"}

	require.NoError(t, s.EnsureBucket(context.Background()))
	assert.True(t, fs.buckets["images"])
	require.NoError(t, s.EnsureBucket(context.Background()))
}

func TestNew_RequiresBucket(t *testing.T) {
	_, err := New(Config{Endpoint: "localhost:9000"})
	require.Error(t, err)
}
