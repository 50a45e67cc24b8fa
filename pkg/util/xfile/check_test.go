package xfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckReadableDir(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("可读目录返回规范化路径", func(t *testing.T) {
		got, err := CheckReadableDir(tmpDir)
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(got))

		// 规范化结果与 EvalSymlinks 一致（macOS 的 /tmp 是符号链接）
		want, err := filepath.EvalSymlinks(tmpDir)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("相对路径被转为绝对路径", func(t *testing.T) {
		t.Chdir(tmpDir)

		got, err := CheckReadableDir(".")
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(got))
	})

	t.Run("符号链接被解析", func(t *testing.T) {
		target := filepath.Join(tmpDir, "target")
		require.NoError(t, os.Mkdir(target, 0750))
		link := filepath.Join(tmpDir, "link")
		require.NoError(t, os.Symlink(target, link))

		got, err := CheckReadableDir(link)
		require.NoError(t, err)

		want, err := filepath.EvalSymlinks(target)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("不存在的目录", func(t *testing.T) {
		_, err := CheckReadableDir(filepath.Join(tmpDir, "missing"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("普通文件不是目录", func(t *testing.T) {
		file := filepath.Join(tmpDir, "file.txt")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0600))

		_, err := CheckReadableDir(file)
		assert.ErrorIs(t, err, ErrNotDirectory)
	})

	t.Run("空路径", func(t *testing.T) {
		_, err := CheckReadableDir("")
		assert.ErrorIs(t, err, ErrEmptyPath)
	})

	t.Run("空字节", func(t *testing.T) {
		_, err := CheckReadableDir("/tmp/\x00dir")
		assert.ErrorIs(t, err, ErrNullByte)
	})
}

func TestCheckReadableFile(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "data.txt")
	require.NoError(t, os.WriteFile(file, []byte("hello"), 0600))

	t.Run("可读文件返回规范化路径", func(t *testing.T) {
		got, err := CheckReadableFile(file)
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(got))
		assert.Equal(t, "data.txt", filepath.Base(got))
	})

	t.Run("目录不是普通文件", func(t *testing.T) {
		_, err := CheckReadableFile(tmpDir)
		assert.ErrorIs(t, err, ErrNotRegularFile)
	})

	t.Run("不存在的文件", func(t *testing.T) {
		_, err := CheckReadableFile(filepath.Join(tmpDir, "missing.txt"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("空路径", func(t *testing.T) {
		_, err := CheckReadableFile("")
		assert.ErrorIs(t, err, ErrEmptyPath)
	})
}
