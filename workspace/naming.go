package workspace

import (
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

const maxSlugLength = 32

// ToObjectName derives the Kubernetes object name for a workspace from its
// user-facing name: slugified, truncated and prefixed. Deterministic for any
// non-empty input; an input that slugifies to nothing falls back to a random
// uuid so creation still succeeds.
func ToObjectName(prefix, userFacingName string) string {
	safe := slug.Make(userFacingName)
	if len(safe) > maxSlugLength {
		safe = strings.Trim(safe[:maxSlugLength], "-")
	}
	if safe == "" {
		safe = uuid.NewString()
	}
	return prefix + "-" + safe
}

// IsS3BucketName checks bucket-name syntax: 3-63 chars, lowercase letters,
// digits, dots and hyphens, no leading/trailing dot or hyphen, and none of
// "..", ".-", "-.".
func IsS3BucketName(name string) bool {
	if len(name) < 3 || len(name) > 63 {
		return false
	}
	for _, r := range name {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' && r != '.' {
			return false
		}
	}
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "-") ||
		strings.HasSuffix(name, ".") || strings.HasSuffix(name, "-") {
		return false
	}
	return !strings.Contains(name, "..") &&
		!strings.Contains(name, ".-") &&
		!strings.Contains(name, "-.")
}

// ValidateBucketName checks a bucket name against the owning workspace:
// valid S3 syntax, prefixed by the workspace's own object name, and not
// equal to it (the bare object name is the workspace's default bucket).
// Pure; shared by bucket creation and by the access-request path.
func ValidateBucketName(workspaceObjectName, bucket string) error {
	if !IsS3BucketName(bucket) {
		return newValidationError("bucket", "invalid S3 bucket name: "+bucket)
	}
	if bucket == workspaceObjectName {
		return newValidationError("bucket", "bucket name equals the workspace name")
	}
	if !strings.HasPrefix(bucket, workspaceObjectName) {
		return newValidationError("bucket", "bucket name must start with "+workspaceObjectName)
	}
	return nil
}
