package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/wastebounty/backend/pkg/errorx"
	"github.com/wastebounty/backend/pkg/router"
	"github.com/wastebounty/backend/pkg/xcontext"
)

func Logger() router.CloserFunc {
	return func(ctx context.Context) {
		req := xcontext.HTTPRequest(ctx)
		info := fmt.Sprintf("%s | %s", req.Method, req.URL.Path)
		if err := xcontext.Error(ctx); err != nil {
			var errx errorx.Error
			if errors.As(err, &errx) {
				if errx.IsSoft() {
					xcontext.Logger(ctx).Infof("%s | %d", info, errx.Code)
				} else {
					xcontext.Logger(ctx).Warnf("%s | %d", info, errx.Code)
				}
			} else {
				xcontext.Logger(ctx).Errorf("%s | %d", info, -1)
			}
		} else {
			xcontext.Logger(ctx).Infof(info)
		}
	}
}
