package thread

import (
    "sync"
    "context"
)

/* goroutines that share one quit context. Wait blocks until all of them
 * have returned and then cancels the context
 */
type ThreadGroup struct {
    wait sync.WaitGroup
    quit context.Context
    cancel context.CancelFunc
}

type ThreadFuncCancel func(quit context.Context, cancel context.CancelFunc)
type ThreadFunc func()

func NewThreadGroup(parent context.Context) *ThreadGroup {
    quit, cancel := context.WithCancel(parent)
    out := &ThreadGroup{
        quit: quit,
        cancel: cancel,
    }

    return out
}

func (group *ThreadGroup) SpawnWithCancel(f ThreadFuncCancel){
    group.wait.Add(1)
    go func(){
        defer group.wait.Done()
        f(group.quit, group.cancel)
    }()
}

func (group *ThreadGroup) Spawn(f ThreadFunc) {
    group.wait.Add(1)
    go func(){
        defer group.wait.Done()
        f()
    }()
}

func (group *ThreadGroup) Cancel(){
    group.cancel()
}

func (group *ThreadGroup) Context() context.Context {
    return group.quit
}

func (group *ThreadGroup) Done() <-chan struct{} {
    return group.quit.Done()
}

func (group *ThreadGroup) Wait(){
    group.wait.Wait()
    group.cancel()
}
