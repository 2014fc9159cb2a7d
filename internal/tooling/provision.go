package tooling

import (
	"context"
	"io"

	"github.com/moby/moby/client"
)

// dockerAPIClient is the subset of Docker Engine API methods used by
// DockerImageProvisioner. Defined as an interface so tests can inject a mock
// instead of talking to a real Docker daemon.
type dockerAPIClient interface {
	ImagePull(ctx context.Context, refStr string, options client.ImagePullOptions) (imagePullResponse, error)
	Close() error
}

// imagePullResponse is the subset of client.ImagePullResponse we use.
// The real client.ImagePullResponse satisfies this (it embeds io.ReadCloser).
type imagePullResponse interface {
	io.ReadCloser
}

// dockerClientAdapter wraps *client.Client to satisfy dockerAPIClient,
// narrowing ImagePull's return type down to io.ReadCloser since EnsureImage
// only needs to drain and close the reader.
type dockerClientAdapter struct {
	cli *client.Client
}

var _ dockerAPIClient = (*dockerClientAdapter)(nil)

func (a *dockerClientAdapter) ImagePull(ctx context.Context, ref string, opts client.ImagePullOptions) (imagePullResponse, error) {
	return a.cli.ImagePull(ctx, ref, opts)
}
func (a *dockerClientAdapter) Close() error {
	return a.cli.Close()
}

// DockerImageProvisioner pulls the openhue CLI image via the Docker Engine
// API. The hot path runs the image through the docker command line; this
// provisioner exists so `huemcp doctor` can verify the daemon is reachable
// and fetch the image before the first tool call needs it.
type DockerImageProvisioner struct {
	api dockerAPIClient
}

// newDockerClientFunc creates the Docker API client.
// Package-level so tests can inject a failing factory to cover the error path.
var newDockerClientFunc = func() (dockerAPIClient, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, err
	}
	return &dockerClientAdapter{cli: cli}, nil
}

// NewDockerImageProvisioner creates a provisioner connected to the local
// Docker daemon using environment defaults (DOCKER_HOST, etc.).
func NewDockerImageProvisioner() (*DockerImageProvisioner, error) {
	api, err := newDockerClientFunc()
	if err != nil {
		return nil, err
	}
	return &DockerImageProvisioner{api: api}, nil
}

// EnsureImage pulls the image if it is not already available locally. A
// failure here also covers the unreachable-daemon case, since the pull is
// the first round trip to the engine.
func (d *DockerImageProvisioner) EnsureImage(ctx context.Context, ref string) error {
	resp, err := d.api.ImagePull(ctx, ref, client.ImagePullOptions{})
	if err != nil {
		return err
	}
	defer resp.Close()
	// Drain the reader to complete the pull (progress output is discarded)
	_, err = io.Copy(io.Discard, resp)
	return err
}

// Close closes the Docker client connection.
func (d *DockerImageProvisioner) Close() error {
	return d.api.Close()
}
