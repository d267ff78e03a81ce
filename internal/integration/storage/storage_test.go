package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalImageStorage_SaveURLDelete(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	store := NewLocalImageStorage(root, "/media")

	require.NoError(t, store.Save(ctx, "products/abc.png", "image/png", []byte("png-bytes")))

	data, err := os.ReadFile(filepath.Join(root, "products", "abc.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
	assert.Equal(t, "/media/products/abc.png", store.URL("products/abc.png"))
	assert.Equal(t, "", store.URL(""))

	require.NoError(t, store.Delete(ctx, "products/abc.png"))
	_, err = os.Stat(filepath.Join(root, "products", "abc.png"))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, store.Delete(ctx, "products/abc.png"))
}

func TestLocalImageStorage_KeysStayInsideRoot(t *testing.T) {
	root := t.TempDir()
	store := NewLocalImageStorage(root, "/media/")

	require.NoError(t, store.Save(context.Background(), "../../escape.png", "image/png", []byte("x")))
	_, err := os.Stat(filepath.Join(root, "escape.png"))
	assert.NoError(t, err)

	assert.Error(t, store.Save(context.Background(), "", "image/png", []byte("x")))
}

// fakeS3 records objects in memory.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
	err     error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeS3) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	data, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	key := *params.Bucket + "/" + *params.Key
	f.objects[key] = data
	f.types[key] = *params.ContentType
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, params *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	delete(f.objects, *params.Bucket+"/"+*params.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3ImageStorage(t *testing.T) {
	ctx := context.Background()
	client := newFakeS3()
	store := NewS3ImageStorage(client, "media", "http://localhost:9000/media/")

	require.NoError(t, store.Save(ctx, "products/a.jpg", "image/jpeg", []byte("jpeg")))
	assert.Equal(t, []byte("jpeg"), client.objects["media/products/a.jpg"])
	assert.Equal(t, "image/jpeg", client.types["media/products/a.jpg"])
	assert.Equal(t, "http://localhost:9000/media/products/a.jpg", store.URL("products/a.jpg"))

	require.NoError(t, store.Delete(ctx, "products/a.jpg"))
	assert.Empty(t, client.objects)
}

func TestS3ImageStorage_PropagatesErrors(t *testing.T) {
	client := newFakeS3()
	client.err = errors.New("boom")
	store := NewS3ImageStorage(client, "media", "http://cdn")

	assert.Error(t, store.Save(context.Background(), "products/a.jpg", "image/jpeg", []byte("x")))
	assert.Error(t, store.Delete(context.Background(), "products/a.jpg"))
}
