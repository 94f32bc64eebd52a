// Package toolkit provides the drcmd Go SDK: declarative command building,
// local and SSH-tunneled execution, and bounded retries, for disaster-recovery
// automation that needs to run commands programmatically instead of shelling
// out to the drcmd CLI binary.
//
// # Quick start
//
// Build a command and execute it on the local host:
//
//	executor, err := toolkit.NewExecutor(toolkit.ExecutorConfig{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer executor.Close()
//
//	cmd := toolkit.NewGrep().IgnoreCase().Regex("fail.*over").Add("/var/log/dr.log")
//	result := executor.Execute(ctx, cmd)
//	if !result.Successful() {
//	    // Non-zero exit codes are data, inspect result.Code / result.Error.
//	}
//
// # Remote execution
//
// Commands can be tunneled to a remote host over ssh. The remote executor
// wraps the command in an ssh invocation with a transient identity file and
// runs it through a local executor:
//
//	remote, err := toolkit.NewRemoteExecutor(toolkit.RemoteExecutorConfig{
//	    User:       "ec2-user",
//	    Host:       "replica.dr.example.com",
//	    PrivateKey: pemKey,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer remote.Close()
//
//	result, err := remote.ExecuteAsRoot(ctx, toolkit.NewDf().HumanReadable())
//
// # Waiting for external state
//
// Assure retries an operation with a fixed interval until it succeeds or the
// attempts run out, which is how workflows wait for a rebooted host or a
// recovering service:
//
//	err := toolkit.Assure(ctx, func() error {
//	    result, err := remote.Execute(ctx, toolkit.NewEcho().Content("up"))
//	    if err != nil {
//	        return err
//	    }
//	    if !result.Successful() {
//	        return fmt.Errorf("host not ready")
//	    }
//	    return nil
//	})
package toolkit
