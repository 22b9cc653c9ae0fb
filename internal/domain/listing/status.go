package listing

const (
	VerificationPending  = "PENDING"
	VerificationApproved = "APPROVED"
	VerificationRejected = "REJECTED"
)

const (
	PublishPublished   = "PUBLISHED"
	PublishUnpublished = "UNPUBLISHED"
	PublishArchived    = "ARCHIVED"
)

func ValidVerificationStatus(s string) bool {
	switch s {
	case VerificationPending, VerificationApproved, VerificationRejected:
		return true
	}
	return false
}

func ValidPublishStatus(s string) bool {
	switch s {
	case PublishPublished, PublishUnpublished, PublishArchived:
		return true
	}
	return false
}

// ReviewOnUpdateSQL is the verification_status expression used when a
// listing is republished: a rejected listing goes back into review.
const ReviewOnUpdateSQL = `CASE WHEN verification_status = 'REJECTED' THEN 'PENDING' ELSE verification_status END`
