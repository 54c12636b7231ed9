package bootstrap

import (
	"context"
	"fmt"

	"search-hub/driver"
)

// initContentDriver creates the read-only driver over the content database.
func initContentDriver(ctx context.Context) (*driver.ContentDriver, error) {
	contentDriver, err := driver.NewContentDriverFromConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("content database init: %w", err)
	}
	return contentDriver, nil
}
