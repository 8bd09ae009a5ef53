package metadata

// Recognized module.prop keys.
const (
	KeyID          = "id"
	KeyName        = "name"
	KeyVersion     = "version"
	KeyVersionCode = "versionCode"
	KeyAuthor      = "author"
	KeyDescription = "description"
	KeyUpdateJSON  = "updateJson"
)

// Record is the module's identity-and-version state. ID, Author, Description,
// and UpdateJSON are set once at initialization; Version and VersionCode are
// rewritten by reconciliation.
type Record struct {
	ID          string
	Name        string
	Version     string
	VersionCode int64
	Author      string
	Description string
	UpdateJSON  string
}

// orderedKeys is the canonical key order for freshly rendered records.
var orderedKeys = []string{
	KeyID,
	KeyName,
	KeyVersion,
	KeyVersionCode,
	KeyAuthor,
	KeyDescription,
	KeyUpdateJSON,
}

func (r *Record) value(key string) string {
	switch key {
	case KeyID:
		return r.ID
	case KeyName:
		return r.Name
	case KeyVersion:
		return r.Version
	case KeyVersionCode:
		return formatCode(r.VersionCode)
	case KeyAuthor:
		return r.Author
	case KeyDescription:
		return r.Description
	case KeyUpdateJSON:
		return r.UpdateJSON
	}
	return ""
}

func (r *Record) setValue(key, value string) {
	switch key {
	case KeyID:
		r.ID = value
	case KeyName:
		r.Name = value
	case KeyVersion:
		r.Version = value
	case KeyVersionCode:
		r.VersionCode = parseCode(value)
	case KeyAuthor:
		r.Author = value
	case KeyDescription:
		r.Description = value
	case KeyUpdateJSON:
		r.UpdateJSON = value
	}
}

func isRecognizedKey(key string) bool {
	for _, known := range orderedKeys {
		if key == known {
			return true
		}
	}
	return false
}
