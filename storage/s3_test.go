package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/RomanKim94/foodgram/entity"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type fakeS3 struct {
	objects map[string][]byte
	acl     map[string]s3types.ObjectCannedACL
	deleted []string
	failPut bool
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.failPut {
		return nil, errors.New("access denied")
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	key := aws.ToString(in.Key)
	f.objects[key] = data
	f.acl[key] = in.ACL
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	key := aws.ToString(in.Key)
	delete(f.objects, key)
	f.deleted = append(f.deleted, key)
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3StoreSaveDelete(t *testing.T) {
	client := &fakeS3{objects: map[string][]byte{}, acl: map[string]s3types.ObjectCannedACL{}}
	store := &S3Store{Client: client, Bucket: "foodgram", PublicURL: "https://cdn.example.com"}
	ctx := context.Background()

	ref, err := store.Save(ctx, "recipes", &entity.Image{Data: []byte("jpeg"), ContentType: "image/jpeg", Ext: "jpeg"})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasPrefix(ref, "https://cdn.example.com/recipes/") {
		t.Fatalf("ref = %q", ref)
	}
	key := strings.TrimPrefix(ref, "https://cdn.example.com/")
	if string(client.objects[key]) != "jpeg" {
		t.Errorf("uploaded body = %q", client.objects[key])
	}
	if client.acl[key] != s3types.ObjectCannedACLPublicRead {
		t.Errorf("acl = %q", client.acl[key])
	}

	if err := store.Delete(ctx, ref); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(client.deleted) != 1 || client.deleted[0] != key {
		t.Errorf("deleted = %v", client.deleted)
	}
	if err := store.Delete(ctx, "/media/recipes/a.png"); !errors.Is(err, ErrForeignReference) {
		t.Errorf("foreign Delete = %v", err)
	}
}

func TestS3StoreRejectsPathExtensions(t *testing.T) {
	client := &fakeS3{objects: map[string][]byte{}, acl: map[string]s3types.ObjectCannedACL{}}
	store := &S3Store{Client: client, Bucket: "foodgram", PublicURL: "https://cdn.example.com"}
	_, err := store.Save(context.Background(), "users", &entity.Image{Data: []byte("x"), Ext: "x/../../../pwned"})
	if !errors.Is(err, ErrInvalidExtension) {
		t.Errorf("Save = %v, want ErrInvalidExtension", err)
	}
	if len(client.objects) != 0 {
		t.Errorf("objects uploaded: %v", client.objects)
	}
}

func TestS3StoreUploadFailure(t *testing.T) {
	store := &S3Store{Client: &fakeS3{failPut: true}, Bucket: "foodgram", PublicURL: "https://cdn.example.com"}
	if _, err := store.Save(context.Background(), "users", &entity.Image{Data: []byte("x"), Ext: "png"}); err == nil {
		t.Error("upload failure not reported")
	}
}

func TestNewRejectsUnknownBackend(t *testing.T) {
	if _, err := New(context.Background(), entity.MediaConfig{Backend: "ftp"}); err == nil {
		t.Error("unknown backend accepted")
	}
	store, err := New(context.Background(), entity.MediaConfig{Root: t.TempDir(), URLPrefix: "/media"})
	if err != nil {
		t.Fatalf("New local: %v", err)
	}
	if _, ok := store.(*LocalStore); !ok {
		t.Errorf("default backend = %T", store)
	}
	if _, err := New(context.Background(), entity.MediaConfig{Backend: "s3"}); err == nil {
		t.Error("s3 backend without bucket accepted")
	}
}
