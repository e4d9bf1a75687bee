// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package publish

import (
	"context"
	"sort"
	"testing"

	"github.com/fsouza/fake-gcs-server/fakestorage"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadDir(t *testing.T) {
	server := fakestorage.NewServer(nil)
	defer server.Stop()
	server.CreateBucketWithOpts(fakestorage.CreateBucketOpts{Name: "figures"})

	fs := afero.NewMemMapFs()
	files := map[string]string{
		"/figures/2024-05-01.12:00:00/fpr.pdf":    "%PDF-1.4",
		"/figures/2024-05-01.12:00:00/index.html": "<html></html>",
		"/figures/2024-05-01.12:00:00/svg/fpr.svg": "<svg/>",
	}
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
	}

	u := &Uploader{Client: server.Client(), Bucket: "figures", Prefix: "paper/v1", FS: fs}
	ctx := context.Background()
	names, err := u.UploadDir(ctx, "/figures/2024-05-01.12:00:00")
	require.NoError(t, err)
	want := []string{"paper/v1/fpr.pdf", "paper/v1/index.html", "paper/v1/svg/fpr.svg"}
	sort.Strings(names)
	assert.Equal(t, want, names)

	obj, err := server.GetObject("figures", "paper/v1/index.html")
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", string(obj.Content))
	assert.Contains(t, obj.ContentType, "text/html")

	listed, err := u.List(ctx)
	require.NoError(t, err)
	sort.Strings(listed)
	assert.Equal(t, want, listed)
}

func TestUploadDirNoBucket(t *testing.T) {
	u := &Uploader{FS: afero.NewMemMapFs()}
	_, err := u.UploadDir(context.Background(), "/figures")
	assert.Error(t, err)
}
