// Package modules lists every module bytekit ships, in registration order.
package modules

import (
	"bytekit/internal/completion"
	"bytekit/internal/module"
	"bytekit/internal/modules/aes"
	"bytekit/internal/modules/base58"
	"bytekit/internal/modules/base64"
	"bytekit/internal/modules/ecdsa"
	"bytekit/internal/modules/hash"
	"bytekit/internal/modules/hex"
	"bytekit/internal/modules/html"
	"bytekit/internal/modules/numcodec"
	"bytekit/internal/modules/numsys"
	"bytekit/internal/modules/pbkdf2"
	"bytekit/internal/modules/re"
	"bytekit/internal/modules/textcase"
	"bytekit/internal/modules/timestamp"
	"bytekit/internal/modules/unicode"
	"bytekit/internal/modules/url"
	"bytekit/internal/usage"
)

// All returns the modules in the order their commands are listed
func All() []module.Module {
	return []module.Module{
		hex.Module(),
		timestamp.Module(),
		numsys.Module(),
		base58.Module(),
		base64.Module(),
		url.Module(),
		numcodec.Module(),
		hash.Module(),
		unicode.Module(),
		html.Module(),
		re.Module(),
		pbkdf2.Module(),
		textcase.Module(),
		aes.Module(),
		ecdsa.Module(),
	}
}

// NewRegistry registers every module followed by the usage and completion
// builtins.
func NewRegistry() *module.Registry {
	return module.NewRegistry(All(), usage.New(), completion.New())
}
