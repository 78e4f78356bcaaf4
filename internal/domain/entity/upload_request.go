package entity

// PhotoType is the media category of an upload. It selects the size preset
// and the storage folder the transformed object lands in.
type PhotoType string

const (
	PhotoTypeAvatar       PhotoType = "avatar"
	PhotoTypeCover        PhotoType = "cover"
	PhotoTypeCampaign     PhotoType = "campaign"
	PhotoTypeVerification PhotoType = "verification"
	PhotoTypeGallery      PhotoType = "gallery"
	PhotoTypePostMedia    PhotoType = "post_media"
)

// PhotoTypes lists every supported category. Config validation iterates it so a
// missing preset is caught at startup, not at upload time.
func PhotoTypes() []PhotoType {
	return []PhotoType{
		PhotoTypeAvatar,
		PhotoTypeCover,
		PhotoTypeCampaign,
		PhotoTypeVerification,
		PhotoTypeGallery,
		PhotoTypePostMedia,
	}
}

type PhotoPurpose string

const (
	PurposePersonal PhotoPurpose = "personal"
	PurposeCampaign PhotoPurpose = "campaign"
	PurposeBoth     PhotoPurpose = "both"
)

// UploadRequest carries one user-submitted file through the pipeline.
// It is immutable once constructed; stages write to the pipeline context only.
type UploadRequest struct {
	Data         []byte
	DeclaredMIME string
	Filename     string
	Size         int64
	UserID       string
	PhotoType    PhotoType
	Purpose      PhotoPurpose
	Caption      string
	CandidateID  string
	PostID       string
}
