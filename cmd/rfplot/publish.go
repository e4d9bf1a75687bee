// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/divafilter/rfbench/publish"
)

// publishCommand uploads a figure directory to Cloud Storage.
type publishCommand struct {
	*common
	bucket   *string
	prefix   *string
	token    *string
	endpoint *string
	dir      *string
}

func addPublishCommand(app *kingpin.Application, c *common) {
	cmd := &publishCommand{common: c}
	clause := app.Command("publish", "Upload a figure directory to a Cloud Storage bucket.").Action(cmd.run)
	cmd.bucket = clause.Flag("bucket", "Destination bucket.").Required().String()
	cmd.prefix = clause.Flag("prefix", "Object name prefix.").String()
	cmd.token = clause.Flag("token", "OAuth2 access token. Default: application default credentials.").Envar("RFPLOT_GCS_TOKEN").String()
	cmd.endpoint = clause.Flag("endpoint", "Storage API endpoint, for emulators.").String()
	cmd.dir = clause.Arg("dir", "Figure directory to upload.").Required().ExistingDir()
}

func (cmd *publishCommand) run(*kingpin.ParseContext) error {
	ctx := context.Background()
	client, err := publish.NewClient(ctx, publish.Config{Token: *cmd.token, Endpoint: *cmd.endpoint})
	if err != nil {
		return err
	}
	defer client.Close()
	u := &publish.Uploader{
		Client: client,
		Bucket: *cmd.bucket,
		Prefix: *cmd.prefix,
		FS:     cmd.fs,
		Logger: cmd.logger(),
	}
	names, err := u.UploadDir(ctx, *cmd.dir)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.stdout, "uploaded %d objects to gs://%s/%s\n", len(names), *cmd.bucket, *cmd.prefix)
	return nil
}
