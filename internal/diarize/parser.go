package diarize

import (
	"strconv"
	"strings"

	"overdub/internal/services"
	"overdub/internal/utterance"
)

// ParseSpeakerResponse converts the generative model's reply into ordered
// speaker attribution tuples. The reply holds "(speaker_label, gender_label)"
// tuples, one per line or several on a line separated by commas; blank lines
// are ignored and an empty reply yields an empty slice. Order is preserved
// exactly as written and duplicates are kept — attribution is positional, so
// silently dropping or reordering a declared speaker would corrupt every
// downstream record.
//
// Any malformed line aborts parsing with services.ErrParse naming the line;
// no partial result is returned.
func ParseSpeakerResponse(response string) ([]utterance.SpeakerInfo, error) {
	// A close paren followed by a comma always ends a tuple, so a line like
	// "(speaker_1, Male), (speaker_2, Female)" splits into two.
	response = strings.ReplaceAll(response, "),", ")\n")

	info := make([]utterance.SpeakerInfo, 0, 4)
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		tuple, err := parseTuple(line)
		if err != nil {
			return nil, err
		}
		info = append(info, tuple)
	}
	return info, nil
}

func parseTuple(line string) (utterance.SpeakerInfo, error) {
	var empty utterance.SpeakerInfo
	if !strings.HasPrefix(line, "(") || !strings.HasSuffix(line, ")") {
		return empty, parseError("line " + strconv.Quote(line) + " is not parenthesized")
	}
	body := strings.TrimSuffix(strings.TrimPrefix(line, "("), ")")
	tokens := strings.Split(body, ",")
	if len(tokens) != 2 {
		return empty, parseError("line " + strconv.Quote(line) + " does not hold exactly two tokens")
	}
	speaker := strings.TrimSpace(tokens[0])
	gender := strings.TrimSpace(tokens[1])
	if speaker == "" || gender == "" {
		return empty, parseError("line " + strconv.Quote(line) + " holds an empty token")
	}
	return utterance.SpeakerInfo{ID: speaker, Gender: gender}, nil
}

func parseError(message string) error {
	return services.Wrap(services.ErrParse, "transcribe", "parse diarization response", message, nil)
}
