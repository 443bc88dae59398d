package codec

import (
	"strings"

	"qr-engine/internal/common/errors"
)

const (
	kakaoChannelBase  = "https://pf.kakao.com/"
	kakaoOpenChatBase = "https://open.kakao.com/o/"
)

type kakaoFields struct {
	ChannelID    *string
	OpenChatCode *string
}

func validateKakaoTalk(raw RawFields) (kakaoFields, error) {
	var f kakaoFields

	channel, err := optionalString(raw, "channelId")
	if err != nil {
		return f, err
	}
	code, err := optionalString(raw, "openChatCode")
	if err != nil {
		return f, err
	}

	switch {
	case channel != nil && code != nil:
		return f, errors.NewMutuallyExclusiveError("openChatCode", "provide either channelId or openChatCode, not both")
	case channel == nil && code == nil:
		return f, errors.NewMissingFieldError("channelId", "channelId or openChatCode is required")
	case channel != nil:
		body := strings.TrimPrefix(*channel, "_")
		if body == *channel || !isAlnum(body) {
			return f, errors.NewBadFormatError("channelId", "channelId must be _ followed by letters and digits")
		}
		if err := lengthBetween("channelId", body, 4, 20); err != nil {
			return f, err
		}
		f.ChannelID = channel
	default:
		if !isAlnum(*code) {
			return f, errors.NewBadFormatError("openChatCode", "openChatCode may contain only letters and digits")
		}
		if err := lengthBetween("openChatCode", *code, 6, 12); err != nil {
			return f, err
		}
		f.OpenChatCode = code
	}
	return f, nil
}

func buildKakaoTalk(f kakaoFields) Payload {
	m := meta{"platform": "KAKAOTALK"}
	if f.ChannelID != nil {
		m.set("identifierType", "channel").set("channelId", *f.ChannelID)
		return newPayload(TypeKakaoTalk, kakaoChannelBase+*f.ChannelID, m)
	}
	m.set("identifierType", "openChat").set("openChatCode", *f.OpenChatCode)
	return newPayload(TypeKakaoTalk, kakaoOpenChatBase+*f.OpenChatCode, m)
}
