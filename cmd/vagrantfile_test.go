package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeVagrantfile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Vagrantfile"), []byte(content), 0644))
	return dir
}

const labVagrantfile = `Vagrant.configure("2") do |config|
  config.vm.define "web" do |web|
    web.vm.network "private_network", ip: "192.168.56.10"
  end
  config.vm.define "db" do |db|
    db.vm.network "private_network", ip: "192.168.56.11"
  end
end
`

func TestVagrantfileCmd(t *testing.T) {
	t.Run("network", func(t *testing.T) {
		useFakeSource(t, labSource())
		dir := writeVagrantfile(t, labVagrantfile)

		stdout, _, err := executeCommandC(rootCmd, "vagrantfile", "network", "--project-dir", dir)
		require.NoError(t, err)
		assert.Equal(t, "192.168.56.0\n", stdout)
	})

	t.Run("no private network", func(t *testing.T) {
		useFakeSource(t, labSource())
		dir := writeVagrantfile(t, `Vagrant.configure("2") do |config| end`)

		stdout, _, err := executeCommandC(rootCmd, "vagrantfile", "network", "--project-dir", dir)
		require.NoError(t, err)
		assert.Contains(t, stdout, "No 192.168.x.x private_network found.")
	})

	t.Run("machines", func(t *testing.T) {
		useFakeSource(t, labSource())
		dir := writeVagrantfile(t, labVagrantfile)

		stdout, _, err := executeCommandC(rootCmd, "vagrantfile", "machines", "--project-dir", dir)
		require.NoError(t, err)
		assert.Equal(t, "Defined machines:\n- web\n- db\n", stdout)
	})

	t.Run("missing Vagrantfile", func(t *testing.T) {
		useFakeSource(t, labSource())

		_, _, err := executeCommandC(rootCmd, "vagrantfile", "machines", "--project-dir", t.TempDir())
		assert.Error(t, err)
	})
}
