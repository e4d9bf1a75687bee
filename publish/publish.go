// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package publish copies rendered figures to Google Cloud Storage.
package publish

import (
	"context"
	"io"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"golang.org/x/oauth2"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// Config selects the storage service and credentials.
type Config struct {
	// Token is a static OAuth2 access token. If empty, application
	// default credentials are used.
	Token string
	// Endpoint overrides the storage API endpoint, for emulators.
	// Requests to a custom endpoint are not authenticated.
	Endpoint string
}

// NewClient returns a storage client for cfg.
func NewClient(ctx context.Context, cfg Config) (*storage.Client, error) {
	opts := []option.ClientOption{option.WithUserAgent("rfplot")}
	switch {
	case cfg.Endpoint != "":
		opts = append(opts, option.WithEndpoint(cfg.Endpoint), option.WithoutAuthentication())
	case cfg.Token != "":
		opts = append(opts, option.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})))
	}
	c, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "creating storage client")
	}
	return c, nil
}

// An Uploader copies files into a bucket under a common prefix.
type Uploader struct {
	Client *storage.Client
	Bucket string
	// Prefix is prepended to every object name. It may be empty.
	Prefix string
	FS     afero.Fs
	Logger log.Logger
}

func (u *Uploader) logger() log.Logger {
	if u.Logger == nil {
		return log.NewNopLogger()
	}
	return u.Logger
}

// ObjectName returns the object that file rel, relative to the
// uploaded directory, is stored as.
func (u *Uploader) ObjectName(rel string) string {
	return path.Join(u.Prefix, filepath.ToSlash(rel))
}

// UploadDir uploads every regular file below dir and returns the
// object names written, in walk order.
func (u *Uploader) UploadDir(ctx context.Context, dir string) ([]string, error) {
	if u.Bucket == "" {
		return nil, errors.New("missing bucket name")
	}
	var names []string
	err := afero.Walk(u.FS, dir, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		name := u.ObjectName(rel)
		if err := u.upload(ctx, p, name); err != nil {
			return errors.Wrapf(err, "uploading %s to gs://%s/%s", p, u.Bucket, name)
		}
		level.Debug(u.logger()).Log("msg", "uploaded", "file", p, "object", name, "bytes", info.Size())
		names = append(names, name)
		return nil
	})
	if err != nil {
		return names, err
	}
	level.Info(u.logger()).Log("msg", "published figures", "bucket", u.Bucket, "prefix", u.Prefix, "objects", len(names))
	return names, nil
}

func (u *Uploader) upload(ctx context.Context, file, name string) error {
	f, err := u.FS.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	w := u.Client.Bucket(u.Bucket).Object(name).NewWriter(ctx)
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		w.ContentType = ct
	}
	if _, err := io.Copy(w, f); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// List returns the names of the objects below the uploader's prefix.
func (u *Uploader) List(ctx context.Context) ([]string, error) {
	q := &storage.Query{}
	if u.Prefix != "" {
		q.Prefix = strings.TrimSuffix(u.Prefix, "/") + "/"
	}
	it := u.Client.Bucket(u.Bucket).Objects(ctx, q)
	var names []string
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			return names, nil
		}
		if err != nil {
			return names, err
		}
		names = append(names, attrs.Name)
	}
}
