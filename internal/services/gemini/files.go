package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"overdub/internal/remoteasset"
	"overdub/internal/services"
)

// UploadFile pushes a local media file to the Gemini file service and
// returns its handle. The asset typically starts out pending; use a
// remoteasset.Poller with FileStatus to wait for it.
func (c *Client) UploadFile(ctx context.Context, path, mimeType string) (remoteasset.Handle, error) {
	file, err := c.api.Files.UploadFromPath(ctx, path, &genai.UploadFileConfig{MIMEType: mimeType})
	if err != nil {
		return remoteasset.Handle{}, services.Wrap(services.ErrExternalTool, "transcribe", "upload media",
			fmt.Sprintf("upload %q", path), err)
	}
	return toHandle(file), nil
}

// FileStatus re-queries the current state of an uploaded file. It satisfies
// remoteasset.StatusFunc.
func (c *Client) FileStatus(ctx context.Context, name string) (remoteasset.Handle, error) {
	file, err := c.api.Files.Get(ctx, name, nil)
	if err != nil {
		return remoteasset.Handle{}, err
	}
	return toHandle(file), nil
}

func toHandle(file *genai.File) remoteasset.Handle {
	handle := remoteasset.Handle{
		Name:     file.Name,
		URI:      file.URI,
		MIMEType: file.MIMEType,
	}
	switch file.State {
	case genai.FileStateActive:
		handle.State = remoteasset.StateActive
	case genai.FileStateFailed:
		handle.State = remoteasset.StateFailed
	default:
		handle.State = remoteasset.StatePending
	}
	return handle
}
