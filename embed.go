package linguadmin

import "embed"

//go:embed static internal/auth/templates internal/dashboard/templates internal/education/templates internal/users/templates internal/subscriptions/templates internal/settings/templates
var Files embed.FS
