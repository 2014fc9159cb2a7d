package tooling

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/moby/moby/client"
)

// fakePullReader tracks whether the pull stream was drained and closed.
type fakePullReader struct {
	io.Reader
	closed bool
}

func (f *fakePullReader) Close() error {
	f.closed = true
	return nil
}

// fakeDockerAPI is a test double for dockerAPIClient.
type fakeDockerAPI struct {
	pullErr   error
	reader    *fakePullReader
	pulledRef string
	closed    bool
}

func (f *fakeDockerAPI) ImagePull(ctx context.Context, ref string, opts client.ImagePullOptions) (imagePullResponse, error) {
	f.pulledRef = ref
	if f.pullErr != nil {
		return nil, f.pullErr
	}
	if f.reader == nil {
		f.reader = &fakePullReader{Reader: strings.NewReader("{}")}
	}
	return f.reader, nil
}

func (f *fakeDockerAPI) Close() error {
	f.closed = true
	return nil
}

func TestDockerImageProvisioner_EnsureImage_ShouldDrainAndCloseStream(t *testing.T) {
	api := &fakeDockerAPI{reader: &fakePullReader{Reader: strings.NewReader("progress json")}}
	prov := &DockerImageProvisioner{api: api}

	if err := prov.EnsureImage(context.Background(), "openhue/cli"); err != nil {
		t.Fatalf("EnsureImage: %v", err)
	}
	if api.pulledRef != "openhue/cli" {
		t.Errorf("pulled ref: got %q", api.pulledRef)
	}
	if !api.reader.closed {
		t.Error("pull stream should be closed")
	}
}

func TestDockerImageProvisioner_EnsureImage_WhenPullFails_ShouldReturnError(t *testing.T) {
	api := &fakeDockerAPI{pullErr: fmt.Errorf("daemon unreachable")}
	prov := &DockerImageProvisioner{api: api}

	err := prov.EnsureImage(context.Background(), "openhue/cli")
	if err == nil || !strings.Contains(err.Error(), "daemon unreachable") {
		t.Errorf("expected pull error, got %v", err)
	}
}

func TestDockerImageProvisioner_Close_ShouldCloseClient(t *testing.T) {
	api := &fakeDockerAPI{}
	prov := &DockerImageProvisioner{api: api}

	if err := prov.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !api.closed {
		t.Error("underlying client should be closed")
	}
}

func TestNewDockerImageProvisioner_WhenClientFactoryFails_ShouldReturnError(t *testing.T) {
	old := newDockerClientFunc
	defer func() { newDockerClientFunc = old }()
	newDockerClientFunc = func() (dockerAPIClient, error) {
		return nil, fmt.Errorf("no docker env")
	}

	if _, err := NewDockerImageProvisioner(); err == nil {
		t.Error("expected factory error to propagate")
	}
}
