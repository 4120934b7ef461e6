// Package metadata holds the static OCF self-description document.
package metadata

// XML is the meta-data document the cluster manager reads to discover the
// agent's parameters and actions.
const XML = `<?xml version="1.0"?>
<!DOCTYPE resource-agent SYSTEM "ra-api-1.dtd">
<resource-agent name="neutron-agent" version="1.0">
<version>1.0</version>
<longdesc lang="en">
Resource agent for an OpenStack network agent daemon. It starts the daemon
as the configured OS user with both configuration files, tracks it through
a PID file and stops it gracefully with timeout-based escalation.
</longdesc>
<shortdesc lang="en">Manages an OpenStack network agent daemon</shortdesc>
<parameters>

<parameter name="binary" unique="0" required="0">
<longdesc lang="en">
Name or full path of the network agent daemon binary.
</longdesc>
<shortdesc lang="en">Network agent binary</shortdesc>
<content type="string" default="neutron-dhcp-agent" />
</parameter>

<parameter name="config" unique="0" required="0">
<longdesc lang="en">
Location of the shared configuration file.
</longdesc>
<shortdesc lang="en">Shared config file</shortdesc>
<content type="string" default="/etc/neutron/neutron.conf" />
</parameter>

<parameter name="agent_config" unique="0" required="0">
<longdesc lang="en">
Location of the agent-specific configuration file.
</longdesc>
<shortdesc lang="en">Agent config file</shortdesc>
<content type="string" default="/etc/neutron/dhcp_agent.ini" />
</parameter>

<parameter name="user" unique="0" required="0">
<longdesc lang="en">
OS user to run the daemon as.
</longdesc>
<shortdesc lang="en">Daemon user</shortdesc>
<content type="string" default="neutron" />
</parameter>

<parameter name="pid" unique="0" required="0">
<longdesc lang="en">
Path of the PID file tracking the managed daemon instance. Defaults to a
file named after the resource instance under the cluster runtime temp dir.
</longdesc>
<shortdesc lang="en">PID file</shortdesc>
<content type="string" default="" />
</parameter>

<parameter name="additional_parameters" unique="0" required="0">
<longdesc lang="en">
Additional command-line arguments passed to the daemon.
</longdesc>
<shortdesc lang="en">Extra daemon arguments</shortdesc>
<content type="string" default="" />
</parameter>

<parameter name="journal_dsn" unique="0" required="0">
<longdesc lang="en">
SQLite DSN of an optional local journal recording agent actions. Empty
disables journaling.
</longdesc>
<shortdesc lang="en">Action journal DSN</shortdesc>
<content type="string" default="" />
</parameter>

</parameters>

<actions>
<action name="start" timeout="20s" />
<action name="stop" timeout="20s" />
<action name="status" timeout="20s" />
<action name="monitor" timeout="30s" interval="20s" />
<action name="validate-all" timeout="5s" />
<action name="meta-data" timeout="5s" />
</actions>
</resource-agent>
`
