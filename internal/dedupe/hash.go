package dedupe

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
)

const hashChunkSize = 4096

// HashFile computes the hex-encoded MD5 digest of the file's content,
// streaming it in fixed-size chunks so memory stays bounded regardless of
// file size. Collision resistance is not a security requirement here; the
// digest only proxies content equality.
func HashFile(path string) (digest string, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("hash file %s: %w", path, err)
		}
	}()

	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { err = errors.Join(err, file.Close()) }()

	h := md5.New()
	buf := make([]byte, hashChunkSize)
	for {
		n, readErr := file.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}
		if readErr != nil {
			if readErr == io.EOF {
				break
			}
			return "", readErr
		}
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
