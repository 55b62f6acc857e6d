//go:build !windows

package outlook

import (
	"context"
	"fmt"

	"github.com/outcal/outcal/pkg/calendar"
)

// ComClient requires the Outlook COM automation interface, which only exists
// on Windows. On other platforms this skeleton keeps the package buildable;
// the constructor always fails.
type ComClient struct{}

func NewComClient() (*ComClient, error) {
	return nil, fmt.Errorf("outlook COM automation is only available on windows")
}

func (c *ComClient) Close() {}

func (c *ComClient) Folders(ctx context.Context) ([]Folder, error) {
	return nil, ErrUnreachable
}

func (c *ComClient) Events(ctx context.Context, folder Folder, window calendar.Window) ([]calendar.Event, error) {
	return nil, ErrUnreachable
}

func (c *ComClient) Resync(ctx context.Context, folder Folder) error {
	return ErrUnreachable
}
