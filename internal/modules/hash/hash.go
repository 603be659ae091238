// Package hash digests hex input with one of the supported algorithms.
package hash

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	stdhash "hash"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck
	"golang.org/x/crypto/sha3"

	"bytekit/internal/hexutil"
	"bytekit/internal/module"
	"bytekit/internal/schema"
)

// Module returns the hash module
func Module() module.Module {
	return module.Module{
		Name:        "hash",
		Description: "Hash (MD5, SHA-1, SHA-2, SHA-3, Keccak, BLAKE2b, RIPEMD, BLAKE3)",
		Commands:    commands,
	}
}

type algorithm struct {
	name string
	new  func() stdhash.Hash
}

var algorithms = []algorithm{
	{"md5", md5.New},
	{"sha1", sha1.New},
	{"sha2_224", sha256.New224},
	{"sha2_256", sha256.New},
	{"sha2_384", sha512.New384},
	{"sha2_512", sha512.New},
	{"sha3_256", sha3.New256},
	{"sha3_512", sha3.New512},
	{"keccak_256", sha3.NewLegacyKeccak256},
	{"blake2b_256", func() stdhash.Hash { return mustBlake2b(blake2b.New256(nil)) }},
	{"blake2b_512", func() stdhash.Hash { return mustBlake2b(blake2b.New512(nil)) }},
	{"ripemd_160", ripemd160.New},
	{"blake3", func() stdhash.Hash { return blake3.New() }},
}

// mustBlake2b unwraps an unkeyed constructor, which cannot fail
func mustBlake2b(h stdhash.Hash, err error) stdhash.Hash {
	if err != nil {
		panic(err)
	}
	return h
}

func names() []string {
	out := make([]string, len(algorithms))
	for i, a := range algorithms {
		out[i] = a.name
	}
	return out
}

func lookup(name string) algorithm {
	for _, a := range algorithms {
		if a.name == name {
			return a
		}
	}
	// the flag is validated against names()
	panic("unknown hash algorithm " + name)
}

func commands() []module.Command {
	return []module.Command{
		module.NewCommand(&schema.Schema{
			Name:  "hash",
			Short: "Hash",
			Flags: []schema.Flag{
				{Name: "algo", Short: "a", Help: "Hash algorithm", Default: "sha2_256", Values: names()},
			},
			Args: []schema.Arg{{Name: "INPUT", Help: "Hex bytes", Required: true, Stdin: true}},
		}, run, cases),
	}
}

func run(m *schema.Matches) ([]string, error) {
	b, err := hexutil.Decode(m.Value("INPUT"))
	if err != nil {
		return nil, err
	}
	h := lookup(m.Value("algo")).new()
	h.Write(b)
	return []string{hexutil.Encode(h.Sum(nil))}, nil
}

var cases = []module.Case{
	{
		Desc:      "MD5",
		Input:     []string{"-a", "md5", "0x616263"},
		Output:    []string{"0x900150983cd24fb0d6963f7d28e17f72"},
		IsExample: true,
		IsTest:    true,
		Since:     "0.1.0",
	},
	{
		Desc:   "MD5 of empty input",
		Input:  []string{"-a", "md5", "0x"},
		Output: []string{"0xd41d8cd98f00b204e9800998ecf8427e"},
		IsTest: true,
		Since:  "0.1.0",
	},
	{
		Desc:      "SHA-1",
		Input:     []string{"-a", "sha1", "0x616263"},
		Output:    []string{"0xa9993e364706816aba3e25717850c26c9cd0d89d"},
		IsExample: true,
		IsTest:    true,
		Since:     "0.1.0",
	},
	{
		Desc:   "SHA-1 of empty input",
		Input:  []string{"-a", "sha1", "0x"},
		Output: []string{"0xda39a3ee5e6b4b0d3255bfef95601890afd80709"},
		IsTest: true,
		Since:  "0.1.0",
	},
	{
		Desc:   "SHA-224",
		Input:  []string{"-a", "sha2_224", "0x616263"},
		Output: []string{"0x23097d223405d8228642a477bda255b32aadbce4bda0b3f7e36c9da7"},
		IsTest: true,
		Since:  "0.1.0",
	},
	{
		Desc:      "SHA-256",
		Input:     []string{"-a", "sha2_256", "0x616263"},
		Output:    []string{"0xba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		IsExample: true,
		IsTest:    true,
		Since:     "0.1.0",
	},
	{
		Desc:   "SHA-256 is the default",
		Input:  []string{"0x"},
		Output: []string{"0xe3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		IsTest: true,
		Since:  "0.1.0",
	},
	{
		Desc:   "SHA-384",
		Input:  []string{"-a", "sha2_384", "0x616263"},
		Output: []string{"0xcb00753f45a35e8bb5a03d699ac65007272c32ab0eded1631a8b605a43ff5bed8086072ba1e7cc2358baeca134c825a7"},
		IsTest: true,
		Since:  "0.1.0",
	},
	{
		Desc:   "SHA-384 of empty input",
		Input:  []string{"-a", "sha2_384", "0x"},
		Output: []string{"0x38b060a751ac96384cd9327eb1b1e36a21fdb71114be07434c0cc7bf63f6e1da274edebfe76f65fbd51ad2f14898b95b"},
		IsTest: true,
		Since:  "0.1.0",
	},
	{
		Desc:   "SHA-512",
		Input:  []string{"-a", "sha2_512", "0x616263"},
		Output: []string{"0xddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39a2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f"},
		IsTest: true,
		Since:  "0.1.0",
	},
	{
		Desc:   "SHA-512 of empty input",
		Input:  []string{"-a", "sha2_512", "0x"},
		Output: []string{"0xcf83e1357eefb8bdf1542850d66d8007d620e4050b5715dc83f4a921d36ce9ce47d0d13c5d85f2b0ff8318d2877eec2f63b931bd47417a81a538327af927da3e"},
		IsTest: true,
		Since:  "0.1.0",
	},
	{
		Desc:      "SHA3-256",
		Input:     []string{"-a", "sha3_256", "0x616263"},
		Output:    []string{"0x3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532"},
		IsExample: true,
		IsTest:    true,
		Since:     "0.1.0",
	},
	{
		Desc:   "SHA3-256 of empty input",
		Input:  []string{"-a", "sha3_256", "0x"},
		Output: []string{"0xa7ffc6f8bf1ed76651c14756a061d662f580ff4de43b49fa82d80a4b80f8434a"},
		IsTest: true,
		Since:  "0.1.0",
	},
	{
		Desc:   "SHA3-512",
		Input:  []string{"-a", "sha3_512", "0x616263"},
		Output: []string{"0xb751850b1a57168a5693cd924b6b096e08f621827444f70d884f5d0240d2712e10e116e9192af3c91a7ec57647e3934057340b4cf408d5a56592f8274eec53f0"},
		IsTest: true,
		Since:  "0.1.0",
	},
	{
		Desc:   "SHA3-512 of empty input",
		Input:  []string{"-a", "sha3_512", "0x"},
		Output: []string{"0xa69f73cca23a9ac5c8b567dc185a756e97c982164fe25859e0d1dcc1475c80a615b2123af1f5f94c11e3e9402c3ac558f500199d95b6d3e301758586281dcd26"},
		IsTest: true,
		Since:  "0.1.0",
	},
	{
		Desc:      "Keccak-256 of empty input",
		Input:     []string{"-a", "keccak_256", "0x"},
		Output:    []string{"0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"},
		IsExample: true,
		IsTest:    true,
		Since:     "0.1.0",
	},
	{
		Desc:   "BLAKE2b-256",
		Input:  []string{"-a", "blake2b_256", "0x616263"},
		Output: []string{"0xbddd813c634239723171ef3fee98579b94964e3bb1cb3e427262c8c068d52319"},
		IsTest: true,
		Since:  "0.2.0",
	},
	{
		Desc:   "BLAKE2b-256 of empty input",
		Input:  []string{"-a", "blake2b_256", "0x"},
		Output: []string{"0x0e5751c026e543b2e8ab2eb06099daa1d1e5df47778f7787faab45cdf12fe3a8"},
		IsTest: true,
		Since:  "0.2.0",
	},
	{
		Desc:   "BLAKE2b-512",
		Input:  []string{"-a", "blake2b_512", "0x616263"},
		Output: []string{"0xba80a53f981c4d0d6a2797b69f12f6e94c212f14685ac4b74b12bb6fdbffa2d17d87c5392aab792dc252d5de4533cc9518d38aa8dbf1925ab92386edd4009923"},
		IsTest: true,
		Since:  "0.2.0",
	},
	{
		Desc:      "RIPEMD-160",
		Input:     []string{"-a", "ripemd_160", "0x616263"},
		Output:    []string{"0x8eb208f7e05d987a9b044a8e98c6b087f15a0bfc"},
		IsExample: true,
		IsTest:    true,
		Since:     "0.2.0",
	},
	{
		Desc:   "RIPEMD-160 of empty input",
		Input:  []string{"-a", "ripemd_160", "0x"},
		Output: []string{"0x9c1185a5c5e9fc54612808977ee8f548b2258d31"},
		IsTest: true,
		Since:  "0.2.0",
	},
	{
		Desc:   "BLAKE3 of empty input",
		Input:  []string{"-a", "blake3", "0x"},
		Output: []string{"0xaf1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262"},
		IsTest: true,
		Since:  "0.5.0",
	},
}
