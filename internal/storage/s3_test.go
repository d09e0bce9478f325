package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourname/fitplanner/internal"
)

type fakeS3 struct {
	objects map[string][]byte
	calls   int
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.calls++
	body, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(body))}, nil
}

func TestS3Catalog(t *testing.T) {
	ctx := context.Background()
	fake := &fakeS3{objects: map[string][]byte{"catalogs/catalog.json": seedCatalogJSON}}

	c, err := newS3Catalog(ctx, fake, "catalogs", "catalog.json", internal.NewNopLogger())
	require.NoError(t, err)
	testSeededCatalog(t, c)

	fake.objects["catalogs/catalog.json"] = []byte(`{"recipes":[{"id":99,"name":"Only","meal_type":"snack","diet_types":["keto"]}]}`)
	require.NoError(t, c.Refresh(ctx))
	recipes, err := c.ListRecipes(ctx)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, 99, recipes[0].ID)
	assert.Equal(t, 2, fake.calls)
}

func TestS3Catalog_Errors(t *testing.T) {
	ctx := context.Background()
	fake := &fakeS3{objects: map[string][]byte{"catalogs/bad.json": []byte("nope")}}

	_, err := newS3Catalog(ctx, fake, "catalogs", "missing.json", internal.NewNopLogger())
	assert.Error(t, err)
	_, err = newS3Catalog(ctx, fake, "catalogs", "bad.json", internal.NewNopLogger())
	assert.Error(t, err)
}

func TestS3Catalog_FailedRefreshKeepsSnapshot(t *testing.T) {
	ctx := context.Background()
	fake := &fakeS3{objects: map[string][]byte{"catalogs/catalog.json": seedCatalogJSON}}
	c, err := newS3Catalog(ctx, fake, "catalogs", "catalog.json", internal.NewNopLogger())
	require.NoError(t, err)

	delete(fake.objects, "catalogs/catalog.json")
	assert.Error(t, c.Refresh(ctx))
	testSeededCatalog(t, c)
}
